package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/clasc/site/actuarial"
	"github.com/clasc/site/generic"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type pageLink struct {
	Label string
	// URL comes from configuration, and tel: links would otherwise be
	// rewritten by the template's URL filter.
	URL template.URL
}

type pageSite struct {
	SiteDTO
	Contact []pageLink
}

type pageData struct {
	Site          pageSite
	Year          int
	TechnicalRate string
	WeeksPerMonth string
	MinimumWage   *YearlyWageDTO
}

// Index renders the landing page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.Calculator.Clock()

	links := make([]pageLink, 0, len(h.Site.Contact))
	for _, c := range h.Site.Contact {
		links = append(links, pageLink{Label: c.Label, URL: template.URL(c.URL)})
	}

	data := pageData{
		Site:          pageSite{SiteDTO: h.Site, Contact: links},
		Year:          now.Year(),
		TechnicalRate: actuarial.TechnicalInterestRate.Shift(2).String() + "%",
		WeeksPerMonth: actuarial.WeeksPerMonth.String(),
		MinimumWage:   currentMinimumWage(h.Rates, now.Year()),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		h.Logger.Error("render landing page", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to render page", nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// currentMinimumWage picks the wage for year, else the latest one on record.
func currentMinimumWage(table RateTables, year int) *YearlyWageDTO {
	if table == nil {
		return nil
	}
	if wage, ok := table.MinimumWage(year); ok {
		return &YearlyWageDTO{Year: year, Wage: wage.String(), Formatted: generic.FormatCOP(wage)}
	}
	wages := table.MinimumWages()
	if len(wages) == 0 {
		return nil
	}
	last := wages[len(wages)-1]
	return &YearlyWageDTO{Year: last.Year, Wage: last.Wage.String(), Formatted: generic.FormatCOP(last.Wage)}
}

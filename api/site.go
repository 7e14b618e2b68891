package api

import (
	"fmt"

	"github.com/clasc/site/config"
)

// Service is one line of business shown on the landing page.
type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Testimonial struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	ImageURL string `json:"image_url"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
}

// ContactChannel is a labelled link ("Llamar" → tel:+57...).
type ContactChannel struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type PaymentInfo struct {
	QRImage     string `json:"qr_image"`
	Bank        string `json:"bank"`
	Instruction string `json:"instruction"`
}

// SiteDTO is the static content of the landing page.
type SiteDTO struct {
	Name         string           `json:"name"`
	Headline     string           `json:"headline"`
	Tagline      string           `json:"tagline"`
	Summary      string           `json:"summary"`
	Services     []Service        `json:"services"`
	Reasons      []string         `json:"reasons"`
	Testimonials []Testimonial    `json:"testimonials"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email,omitempty"`
	Address      string           `json:"address,omitempty"`
	OfficeHours  string           `json:"office_hours"`
	Contact      []ContactChannel `json:"contact"`
	Payment      PaymentInfo      `json:"payment"`
	DocTypes     []Option         `json:"doc_types"`
	Genders      []Option         `json:"genders"`
}

// Option is a select-box entry of the calculator forms.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var docTypeOptions = []Option{
	{Value: "cc", Label: "Cédula de Ciudadanía"},
	{Value: "ce", Label: "Cédula de Extranjería"},
	{Value: "nit", Label: "NIT"},
	{Value: "pp", Label: "Pasaporte"},
}

var genderOptions = []Option{
	{Value: "M", Label: "Masculino"},
	{Value: "F", Label: "Femenino"},
}

func validOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

// NewSite builds the landing page content around the configured contact data.
func NewSite(cfg config.SiteConfig) SiteDTO {
	name := cfg.Name
	if name == "" {
		name = "Clasc"
	}
	contact := []ContactChannel{
		{Label: "Llamar", URL: fmt.Sprintf("tel:+%s", cfg.Phone)},
		{Label: "WhatsApp", URL: fmt.Sprintf("https://wa.me/%s", cfg.Phone)},
	}
	if cfg.WhatsAppURL != "" {
		contact = append(contact, ContactChannel{Label: "WhatsApp Business", URL: cfg.WhatsAppURL})
	}
	if cfg.Email != "" {
		contact = append(contact, ContactChannel{Label: "Correo", URL: "mailto:" + cfg.Email})
	}

	return SiteDTO{
		Name:     name,
		Headline: "Precisión y Confianza en Liquidación de Aportes, Cálculos Actuariales y Asesoría Jurídica",
		Tagline:  "Optimizamos procesos y garantizamos cumplimiento normativo con tecnología y experiencia",
		Summary:  "Expertos en liquidación de aportes, cálculos actuariales y asesoría jurídica.",
		Services: []Service{
			{Title: "Liquidación de aportes", Description: "Cumplimiento normativo y optimización financiera para su empresa"},
			{Title: "Cálculos actuariales", Description: "Proyecciones precisas y gestión de riesgos profesional"},
			{Title: "Asesoría jurídica", Description: "Soporte legal especializado en seguridad social"},
			{Title: "Asesorías en seguridad social", Description: "Orientación especializada para empresas e independientes"},
		},
		Reasons: []string{
			"Más de 10 años de experiencia en el sector",
			"Enfoque basado en tecnología y precisión actuarial",
			"Atención personalizada y cumplimiento normativo garantizado",
		},
		Testimonials: []Testimonial{
			{
				Name:     "Carlos Rodríguez",
				Role:     "Director Financiero",
				ImageURL: "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?auto=format&fit=crop&w=200&h=200&q=80",
				Text:     "Clasc ha transformado nuestra gestión de aportes. Su precisión y profesionalismo son excepcionales.",
				Rating:   5,
			},
			{
				Name:     "Ana Martínez",
				Role:     "Gerente de RRHH",
				ImageURL: "https://images.unsplash.com/photo-1494790108377-be9c29b29330?auto=format&fit=crop&w=200&h=200&q=80",
				Text:     "Los cálculos actuariales de Clasc nos han ayudado a tomar decisiones más informadas.",
				Rating:   5,
			},
		},
		Phone:       cfg.Phone,
		Email:       cfg.Email,
		Address:     cfg.Address,
		OfficeHours: "Lunes a Viernes, 8:00 AM - 6:00 PM",
		Contact:     contact,
		Payment: PaymentInfo{
			QRImage:     "/images/bancolombiaqr.png",
			Bank:        "Bancolombia",
			Instruction: "Por favor, escanee este QR en la app Bancolombia para pagar",
		},
		DocTypes: docTypeOptions,
		Genders:  genderOptions,
	}
}

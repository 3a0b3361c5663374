package handler

// pages.go serves the static content pages (about, terms, privacy, faq,
// donation) and receives contact / report-a-problem submissions.  Page
// bodies live in an in-process registry; they change with deployments,
// not at runtime.

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/reelcampus/student-film-platform/internal/model"
	"github.com/reelcampus/student-film-platform/internal/repository"
)

// PagesHandler serves static pages and stores form submissions.
type PagesHandler struct {
	Messages *repository.MessageRepo
}

func NewPagesHandler(m *repository.MessageRepo) *PagesHandler {
	return &PagesHandler{Messages: m}
}

type staticPage struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

var staticPages = map[string]staticPage{
	"about": {
		Slug:  "about",
		Title: "About",
		Body:  "A sharing platform for student filmmakers. Upload your short film, get it reviewed, and reach an audience of fellow students across partner universities.",
	},
	"terms": {
		Slug:  "terms",
		Title: "Terms of Service",
		Body:  "By uploading a film you confirm that you hold the rights to all submitted material and grant the platform a non-exclusive license to stream it. Submissions are reviewed before publication and may be rejected or removed.",
	},
	"privacy": {
		Slug:  "privacy",
		Title: "Privacy Policy",
		Body:  "We store the profile data you provide and the films you upload. Your email address is used for sign-in and notifications only and is never shared with third parties.",
	},
	"faq": {
		Slug:  "faq",
		Title: "Frequently Asked Questions",
		Body:  "Who can join? Anyone with a university email address. How long until my film is reviewed? Usually within a few days. Can I delete my film? Contact us through the report form.",
	},
	"donation": {
		Slug:  "donation",
		Title: "Support the Platform",
		Body:  "The platform is run by volunteers and funded by donations. Contributions cover hosting and streaming costs.",
	},
}

// GetPage handles GET /v1/pages/:slug.
func (h *PagesHandler) GetPage(c echo.Context) error {
	p, ok := staticPages[strings.ToLower(c.Param("slug"))]
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "page not found"})
	}
	return c.JSON(http.StatusOK, p)
}

type messageReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Contact handles POST /v1/contact.
func (h *PagesHandler) Contact(c echo.Context) error {
	return h.storeMessage(c, model.MessageContact)
}

// ReportProblem handles POST /v1/report-problem.
func (h *PagesHandler) ReportProblem(c echo.Context) error {
	return h.storeMessage(c, model.MessageProblem)
}

func (h *PagesHandler) storeMessage(c echo.Context, kind string) error {
	var req messageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Body = strings.TrimSpace(req.Body)
	if req.Email == "" || req.Body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and body are required"})
	}
	m := &model.ContactMessage{
		Kind:    kind,
		Name:    strings.TrimSpace(req.Name),
		Email:   req.Email,
		Subject: strings.TrimSpace(req.Subject),
		Body:    req.Body,
	}
	if err := h.Messages.Create(c.Request().Context(), m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "saving message failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": m.ID})
}

package handlers

import (
	"net/http"

	"github.com/dmitrymomot/mailgate/internal"
	"github.com/dmitrymomot/mailgate/internal/emails"
	"github.com/dmitrymomot/mailgate/middlewares"
	"github.com/dmitrymomot/mailgate/pkg/mailer"
)

// EmailHandler serves the four send endpoints behind bearer authentication.
// Each request makes at most one delivery attempt and reports its outcome
// synchronously.
type EmailHandler struct {
	mailer *mailer.Mailer
	auth   middlewares.AuthConfig
}

// NewEmailHandler creates an EmailHandler.
func NewEmailHandler(m *mailer.Mailer, auth middlewares.AuthConfig) *EmailHandler {
	return &EmailHandler{mailer: m, auth: auth}
}

// Routes implements internal.Handler.
func (h *EmailHandler) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(middlewares.BearerAuth(h.auth))

		r.POST("/send", h.send)
		r.POST("/send-verification", h.sendVerification)
		r.POST("/send-password-reset", h.sendPasswordReset)
		r.POST("/send-dividend-alert", h.sendDividendAlert)
	})
}

func (h *EmailHandler) send(c internal.Context) error {
	var req SendRequest
	if err := bind(c, &req, "Missing required fields: to, subject"); err != nil {
		return err
	}

	err := h.mailer.SendRaw(c, &mailer.Email{
		To:      []string{req.To},
		Subject: req.Subject,
		HTML:    req.HTML,
		Text:    req.Text,
		Tags:    tags(emails.KindGeneric),
	})
	if err != nil {
		return h.failed(c, emails.KindGeneric, req.To, err)
	}

	h.delivered(c, emails.KindGeneric, req.To)
	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"message":      "Email sent successfully",
		"service_used": h.mailer.Provider(),
		"to":           req.To,
	})
}

func (h *EmailHandler) sendVerification(c internal.Context) error {
	var req VerificationRequest
	if err := bind(c, &req, "Missing required fields: to, verification_url"); err != nil {
		return err
	}

	return h.sendTemplate(c, emails.KindVerification, req.To, emails.Verification{
		Username: usernameOrDefault(req.Username),
		URL:      req.VerificationURL,
	}, "Verification email sent")
}

func (h *EmailHandler) sendPasswordReset(c internal.Context) error {
	var req PasswordResetRequest
	if err := bind(c, &req, "Missing required fields: to, reset_url"); err != nil {
		return err
	}

	return h.sendTemplate(c, emails.KindPasswordReset, req.To, emails.PasswordReset{
		Username: usernameOrDefault(req.Username),
		URL:      req.ResetURL,
	}, "Password reset email sent")
}

func (h *EmailHandler) sendDividendAlert(c internal.Context) error {
	var req DividendAlertRequest
	if err := bind(c, &req, "Missing required fields: to, stock_symbol"); err != nil {
		return err
	}

	return h.sendTemplate(c, emails.KindDividendAlert, req.To, emails.DividendAlert{
		Symbol:      req.StockSymbol.String(),
		Amount:      req.Amount.String(),
		Date:        req.Date.String(),
		DaysAdvance: req.DaysAdvance.or("0"),
	}, "Dividend alert sent")
}

func (h *EmailHandler) sendTemplate(c internal.Context, kind emails.Kind, to string, data any, message string) error {
	err := h.mailer.Send(c, mailer.SendParams{
		To:       to,
		Template: kind.Template(),
		Data:     data,
		Tags:     tags(kind),
	})
	if err != nil {
		return h.failed(c, kind, to, err)
	}

	h.delivered(c, kind, to)
	return c.JSON(http.StatusOK, map[string]any{
		"success":      true,
		"message":      message,
		"service_used": h.mailer.Provider(),
	})
}

func (h *EmailHandler) delivered(c internal.Context, kind emails.Kind, to string) {
	c.LogInfo("email sent", "kind", kind, "to", to, "provider", h.mailer.Provider())
}

// failed maps a delivery failure to a 500 carrying the provider's reason.
func (h *EmailHandler) failed(c internal.Context, kind emails.Kind, to string, err error) error {
	c.LogWarn("email delivery failed", "kind", kind, "to", to, "provider", h.mailer.Provider(), "error", err)
	return internal.ErrInternal(err.Error(), internal.WithError(err), internal.WithField("to", to))
}

// bind decodes and validates the body. Any rule failure is reported with
// the endpoint's fixed list of required fields.
func bind(c internal.Context, v any, missing string) error {
	verrs, err := c.BindJSON(v)
	if err != nil {
		return err
	}
	if len(verrs) > 0 {
		return internal.ErrBadRequest(missing, internal.WithError(verrs))
	}
	return nil
}

func usernameOrDefault(name string) string {
	if name == "" {
		return emails.DefaultUsername
	}
	return name
}

func tags(kind emails.Kind) mailer.Tags {
	return mailer.Tags{"category": string(kind)}
}

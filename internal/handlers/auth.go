// Copyright (c) 2026 Mozaik Media d.o.o. <redakcija@mozaik.hr>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"mozaik/internal/middleware"
	"mozaik/internal/models"
	"mozaik/internal/render"
	"mozaik/internal/session"
	"mozaik/internal/store"
)

// totpIssuer is the issuer label shown in authenticator apps.
const totpIssuer = "Mozaik"

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	renderer  *render.Renderer
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer, sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		renderer:  renderer,
		sessions:  sessions,
		userStore: userStore,
	}
}

func errorFlash(message string) []render.Flash {
	return []render.Flash{{Type: "error", Message: message}}
}

// LoginPage renders the login form.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	// Already logged in with 2FA complete: straight to the dashboard.
	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.TwoFADone {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	a.renderer.AdminPage(w, r, "login", &render.PageData{
		Title: "Prijava",
	})
}

// LoginSubmit processes the login form.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := a.userStore.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		a.renderer.AdminPage(w, r, "login", &render.PageData{
			Title:   "Prijava",
			Flashes: errorFlash("Došlo je do neočekivane pogreške."),
		})
		return
	}

	if user == nil || !a.userStore.CheckPassword(user, password) {
		a.renderer.AdminPage(w, r, "login", &render.PageData{
			Title:   "Prijava",
			Flashes: errorFlash("Pogrešna e-mail adresa ili lozinka."),
		})
		return
	}

	// TwoFADone starts false; the session is not fully trusted until
	// the TOTP code checks out.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   false,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.Needs2FASetup() {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
	}
}

// TwoFASetupPage generates a TOTP secret and displays the QR code.
func (a *Auth) TwoFASetupPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	// Regenerating the secret for an enrolled user would silently
	// invalidate their authenticator entry.
	if user, err := a.userStore.FindByID(sess.UserID); err == nil && user != nil && user.TOTPEnabled {
		http.Redirect(w, r, "/admin/2fa/verify", http.StatusSeeOther)
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderer.AdminPage(w, r, "2fa_setup", &render.PageData{
		Title: "Postavljanje dvofaktorske autentifikacije",
		Data: map[string]any{
			"QRCode": base64.StdEncoding.EncodeToString(qrPNG),
			"Secret": key.Secret(),
		},
	})
}

// TwoFAVerifyPage renders the 2FA code entry form for users whose
// authenticator is already enrolled.
func (a *Auth) TwoFAVerifyPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	a.renderer.AdminPage(w, r, "2fa_verify", &render.PageData{
		Title: "Dvofaktorska autentifikacija",
	})
}

// TwoFAVerifySubmit validates the TOTP code and completes
// authentication. It serves both the initial enrollment form and the
// routine verification form; a valid code during enrollment flips
// TOTPEnabled on.
func (a *Auth) TwoFAVerifySubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	code := r.FormValue("code")

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if user.TOTPSecret == nil {
		http.Redirect(w, r, "/admin/2fa/setup", http.StatusSeeOther)
		return
	}

	if !totp.Validate(code, *user.TOTPSecret) {
		if !user.TOTPEnabled {
			// Back to the setup page with the same secret so the
			// authenticator entry the user just scanned stays valid.
			otpauth := fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
				totpIssuer, user.Email, *user.TOTPSecret, totpIssuer)
			qrPNG, _ := qrcode.Encode(otpauth, qrcode.Medium, 256)

			a.renderer.AdminPage(w, r, "2fa_setup", &render.PageData{
				Title:   "Postavljanje dvofaktorske autentifikacije",
				Flashes: errorFlash("Neispravan kod. Pokušajte ponovno."),
				Data: map[string]any{
					"QRCode": base64.StdEncoding.EncodeToString(qrPNG),
					"Secret": *user.TOTPSecret,
				},
			})
			return
		}

		a.renderer.AdminPage(w, r, "2fa_verify", &render.PageData{
			Title:   "Dvofaktorska autentifikacija",
			Flashes: errorFlash("Neispravan kod. Pokušajte ponovno."),
		})
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AccountPage renders the account settings form for the signed-in
// user: display name and password change.
func (a *Auth) AccountPage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("account user lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.renderAccount(w, r, user, nil)
}

func (a *Auth) renderAccount(w http.ResponseWriter, r *http.Request, user *models.User, flashes []render.Flash) {
	a.renderer.AdminPage(w, r, "account", &render.PageData{
		Title:   "Moj račun",
		Section: "account",
		Flashes: flashes,
		Data:    map[string]any{"User": user},
	})
}

// AccountUpdateProfile changes the signed-in user's display name.
func (a *Auth) AccountUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("account user lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	name := strings.TrimSpace(r.FormValue("display_name"))
	if name == "" {
		a.renderAccount(w, r, user, errorFlash("Ime je obavezno."))
		return
	}

	if err := a.userStore.UpdateDisplayName(user.ID, name); err != nil {
		slog.Error("update display name failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// The sidebar shows the session's copy of the name.
	sess.DisplayName = name
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
	}

	user.DisplayName = name
	a.renderAccount(w, r, user, []render.Flash{{Type: "success", Message: "Ime je spremljeno."}})
}

// AccountUpdatePassword changes the signed-in user's password after
// verifying the current one.
func (a *Auth) AccountUpdatePassword(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("account user lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !a.userStore.CheckPassword(user, r.FormValue("current_password")) {
		a.renderAccount(w, r, user, errorFlash("Trenutna lozinka nije ispravna."))
		return
	}

	newPassword := r.FormValue("new_password")
	if errMsg := validatePassword(newPassword, r.FormValue("confirm_password")); errMsg != "" {
		a.renderAccount(w, r, user, errorFlash(errMsg))
		return
	}

	if err := a.userStore.UpdatePassword(user.ID, newPassword); err != nil {
		slog.Error("update password failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.renderAccount(w, r, user, []render.Flash{{Type: "success", Message: "Lozinka je promijenjena."}})
}

// Logout destroys the session and redirects to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Package cookie manages HTTP cookies: plain, HMAC-signed, AES-GCM encrypted,
// and one-shot flash messages.
//
//	m := cookie.New(
//		cookie.WithSecret(cfg.CookieSecret), // 32+ bytes
//		cookie.WithSecure(cfg.CookieSecure),
//	)
//
//	// Signed: readable by the client, tamper-proof. Used for the login session.
//	err := m.SetSigned(w, "session", "42", 30*24*3600)
//	userID, err := m.GetSigned(r, "session")
//
//	// Flash: encrypted JSON that is deleted on first read.
//	err = m.SetFlash(w, "messages", []Message{{Category: "success", Text: "Post created"}})
//	var msgs []Message
//	err = m.Flash(w, r, "messages", &msgs)
//
// Signatures cover the cookie name, so a value cannot be moved to another cookie.
// Without a secret, signed, encrypted and flash operations fail with ErrNoSecret.
// Other errors are ErrNotFound, ErrBadSig and ErrDecrypt.
package cookie

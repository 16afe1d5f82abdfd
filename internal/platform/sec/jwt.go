// Copyright (c) 2026 Artdex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic token verification for editor identity.
//
// # Architecture
//
// Artdex does not mint tokens: editors authenticate against the central
// identity service and arrive here with an RS256-signed JWT. This package
// isolates the verification code from the domain logic and is injected into
// the middleware via the [middleware.TokenVerifier] interface.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// EditorClaims represents the payload embedded inside an editor Access Token.
//
// # Why custom claims?
//
// By embedding the EditorID and Login directly inside the JWT, the
// authentication middleware can attribute artist versions to an editor
// WITHOUT querying an identity store on every single API request.
type EditorClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	EditorID string `json:"uid"`
	Login    string `json:"lgn"`
	Role     string `json:"rol"`
}

// Verifier checks RS256 JWT signatures against a trusted public key.
type Verifier struct {
	publicKey *rsa.PublicKey
	issuer    string
}

// NewVerifier creates a new Verifier.
// It reads the RSA public key from the provided filesystem path.
func NewVerifier(publicKeyPath, issuer string) (*Verifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return &Verifier{
		publicKey: publicKey,
		issuer:    issuer,
	}, nil
}

// NewVerifierFromKey wraps an in-memory public key. Used by tests and tooling
// that already hold key material.
func NewVerifierFromKey(publicKey *rsa.PublicKey, issuer string) *Verifier {
	return &Verifier{publicKey: publicKey, issuer: issuer}
}

// VerifyToken checks the signature and validity of a JWT string.
func (verifier *Verifier) VerifyToken(tokenString string) (*EditorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &EditorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return verifier.publicKey, nil
	}, jwt.WithIssuer(verifier.issuer))

	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*EditorClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	return claims, nil
}

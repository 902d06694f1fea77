package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// CodeLength is the number of hex characters in organizer and invitation codes.
const CodeLength = 6

var codePattern = regexp.MustCompile(`^[0-9A-F]{6}$`)

// NormalizeCode trims and upper-cases raw input and reports whether the
// result is a well-formed code.
func NormalizeCode(raw string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(raw))
	return c, codePattern.MatchString(c)
}

// CodeGenerator draws codes that are unused within one event.  It loads the
// event's taken codes once and tracks what it hands out, so a single
// transaction never issues the same code twice.  The unique index on
// (event_id, code) backs it up across transactions.
type CodeGenerator struct {
	taken    map[string]struct{}
	attempts int
}

// NewCodeGenerator loads the codes already used by eventID.  attempts bounds
// the draws per code before giving up.
func NewCodeGenerator(ctx context.Context, tx Tx, eventID uint64, attempts int) (*CodeGenerator, error) {
	taken := map[string]struct{}{}
	if eventID != 0 {
		codes, err := tx.TakenCodes(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("load taken codes: %w", err)
		}
		for _, c := range codes {
			taken[strings.ToUpper(c)] = struct{}{}
		}
	}
	if attempts <= 0 {
		attempts = 64
	}
	return &CodeGenerator{taken: taken, attempts: attempts}, nil
}

// Next returns a fresh uppercase code.
func (g *CodeGenerator) Next() (string, error) {
	for i := 0; i < g.attempts; i++ {
		c, err := randomCode()
		if err != nil {
			return "", err
		}
		if _, dup := g.taken[c]; dup {
			continue
		}
		g.taken[c] = struct{}{}
		return c, nil
	}
	return "", model.ErrCodeSpaceExhausted
}

// randomCode reads 3 bytes (24 bits) from crypto/rand.
func randomCode() (string, error) {
	b := make([]byte, CodeLength/2)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

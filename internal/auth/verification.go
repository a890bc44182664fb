package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/doech/Wherenow/internal/mailer"
)

const verifyCodeTTL = 10 * time.Minute

var (
	ErrCodeMismatch = errors.New("verification code mismatch")
	ErrCodeExpired  = errors.New("verification code expired or never sent")
)

// Verifier hands out short-lived email codes backed by redis.
type Verifier struct {
	rdb    *redis.Client
	sender mailer.Sender
	svc    *Service
}

func NewVerifier(rdb *redis.Client, sender mailer.Sender, svc *Service) *Verifier {
	return &Verifier{rdb: rdb, sender: sender, svc: svc}
}

func verifyKey(userID string) string {
	return "verify:code:" + userID
}

var newCodeFn = func() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendCode stores a fresh code under a TTL and mails it. Re-sending
// overwrites the previous code.
func (v *Verifier) SendCode(ctx context.Context, userID, email string) error {
	code, err := newCodeFn()
	if err != nil {
		return err
	}
	if err := v.rdb.Set(ctx, verifyKey(userID), code, verifyCodeTTL).Err(); err != nil {
		return err
	}
	return v.sender.Send(email, "Verify your WhereNow account", mailer.CodeHTML(code, verifyCodeTTL))
}

// ConfirmCode checks the stored code, consumes it and marks the user verified.
func (v *Verifier) ConfirmCode(ctx context.Context, userID, code string) error {
	stored, err := v.rdb.Get(ctx, verifyKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	if err := v.rdb.Del(ctx, verifyKey(userID)).Err(); err != nil {
		return err
	}
	return v.svc.MarkVerified(ctx, userID)
}

package interfaces

import "context"

// IMailSender delivers one-time codes to a user's mail address.

type IMailSender interface {
	SendOTP(ctx context.Context, to, code string) error
}

package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	tokendom "videotoken/internal/domain/token"
)

// SendGridNotifier emails the operator when a confirmed mint could not be
// recorded. The mint itself cannot be rolled back, so reconciliation is
// manual; this notification is the trail for it. Best effort only.
type SendGridNotifier struct {
	apiKey string
	from   string
	to     string
}

func NewSendGridNotifier(apiKey, from, to string) *SendGridNotifier {
	return &SendGridNotifier{apiKey: apiKey, from: from, to: to}
}

func (c *SendGridNotifier) NotifyRecordPending(ctx context.Context, rec tokendom.IssuanceRecord, cause error) {
	_ = ctx

	if c == nil || c.apiKey == "" || c.from == "" || c.to == "" {
		log.Printf("[mail] record-pending notification skipped (sendgrid not configured) mint=%s", rec.Mint)
		return
	}

	subject := "videotoken: issuance record pending"
	body := fmt.Sprintf(
		"A mint was confirmed on chain but its issuance record could not be written.\n\n"+
			"mint:     %s\namount:   %s\nvideoUri: %s\ncause:    %v\n",
		rec.Mint, rec.Amount, rec.VideoURI, cause,
	)

	fromEmail := mail.NewEmail("VideoToken", c.from)
	toEmail := mail.NewEmail("", c.to)
	message := mail.NewSingleEmail(fromEmail, subject, toEmail, body, fmt.Sprintf("<pre>%s</pre>", body))

	client := sendgrid.NewSendClient(c.apiKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("[mail] record-pending notification failed mint=%s err=%v", rec.Mint, err)
		return
	}
	if response.StatusCode >= 400 {
		log.Printf("[mail] record-pending notification failed mint=%s status=%d body=%s",
			rec.Mint, response.StatusCode, response.Body)
		return
	}

	log.Printf("[mail] record-pending notification sent mint=%s to=%s", rec.Mint, c.to)
}

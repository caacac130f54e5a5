package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"carbex/internal/domain"
	"carbex/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, frontendURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		frontendURL: frontendURL,
	}, nil
}

func (s *sesSender) SendReportReady(ctx context.Context, toEmail string, report *domain.Report) error {
	reportURL := ReportURL(s.frontendURL, report)
	subject := fmt.Sprintf("Votre rapport « %s » est prêt", report.Title)
	htmlBody := buildReportReadyHTML(report.Title, reportURL)
	textBody := fmt.Sprintf("Bonjour,\n\nVotre rapport « %s » a été généré.\nTéléchargez-le ici :\n%s\n\nL'équipe Carbex", report.Title, reportURL)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendReportFailed(ctx context.Context, toEmail string, report *domain.Report) error {
	subject := fmt.Sprintf("Échec de la génération du rapport « %s »", report.Title)
	reason := "erreur inconnue"
	if report.ErrorMessage != nil {
		reason = *report.ErrorMessage
	}
	htmlBody := buildReportFailedHTML(report.Title, reason)
	textBody := fmt.Sprintf("Bonjour,\n\nLa génération du rapport « %s » a échoué : %s\nVous pouvez relancer la génération depuis votre espace.\n\nL'équipe Carbex", report.Title, reason)
	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// ReportURL is the frontend page of a generated report.
func ReportURL(frontendURL string, report *domain.Report) string {
	return fmt.Sprintf("%s/reports/%s", frontendURL, report.ID)
}

func buildReportReadyHTML(title, reportURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #1F4E79;">Votre rapport est prêt</h2>
  <p>Bonjour,</p>
  <p>Le rapport <strong>%s</strong> a été généré avec succès.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #10B981; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Télécharger le rapport</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Carbex - Bilan carbone des entreprises</p>
</body>
</html>`, html.EscapeString(title), reportURL)
}

func buildReportFailedHTML(title, reason string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #B91C1C;">La génération a échoué</h2>
  <p>Bonjour,</p>
  <p>Le rapport <strong>%s</strong> n'a pas pu être généré : %s.</p>
  <p>Vous pouvez relancer la génération depuis votre espace Carbex.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Carbex - Bilan carbone des entreprises</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(reason))
}

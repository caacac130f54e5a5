package noop_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"carbex/internal/domain"
	"carbex/internal/email/noop"
)

func TestNoopSender_LogsReportURL(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sender := noop.NewNoopSender("https://app.carbex.fr", zap.New(core))
	report := &domain.Report{ID: uuid.New(), Title: "Rapport de synthèse - Année 2024"}

	require.NoError(t, sender.SendReportReady(context.Background(), "cfo@acme.fr", report))
	require.NoError(t, sender.SendReportFailed(context.Background(), "cfo@acme.fr", report))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "https://app.carbex.fr/reports/"+report.ID.String(), entries[0].ContextMap()["url"])
	assert.Equal(t, "cfo@acme.fr", entries[1].ContextMap()["to"])
}

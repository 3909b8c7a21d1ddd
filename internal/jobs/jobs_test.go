package jobs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MikeMC777/storefront/internal/booking"
	"github.com/MikeMC777/storefront/internal/export"
	"github.com/MikeMC777/storefront/internal/kv"
	"github.com/MikeMC777/storefront/internal/order"
	"github.com/MikeMC777/storefront/internal/product"
	"github.com/MikeMC777/storefront/internal/report"
	"github.com/MikeMC777/storefront/internal/review"
	"github.com/MikeMC777/storefront/internal/source"
)

type sentMail struct {
	subject, attachment string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(subject, body, attachment string) error {
	f.sent = append(f.sent, sentMail{subject: subject, attachment: attachment})
	return f.err
}

func newExporter() *export.Exporter {
	src := source.Repos{
		OrderRepo:   order.NewMemRepo(),
		ProductRepo: product.NewMemRepo(product.DefaultCatalog()...),
		ReviewRepo:  review.NewMemRepo(),
		BookingSvc:  booking.NewService(kv.NewMemory()),
	}
	now := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	return export.New(src, &report.Aggregator{Now: func() time.Time { return now }}, zap.NewNop())
}

func TestReportJob_RunWritesAndMails(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	m := &fakeMailer{}
	j, err := NewReportJob(newExporter(), dir, "month", m, zap.NewNop())
	require.NoError(t, err)

	path, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "comprehensive_report_month_2025-03-15.csv"), path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "COMPREHENSIVE BUSINESS REPORT\n"), string(b[:40]))
	assert.Contains(t, string(b), "Time Frame: month")

	require.Len(t, m.sent, 1)
	assert.Equal(t, path, m.sent[0].attachment)
}

func TestReportJob_MailFailureKeepsFile(t *testing.T) {
	m := &fakeMailer{err: errors.New("smtp down")}
	j, err := NewReportJob(newExporter(), t.TempDir(), "", m, zap.NewNop())
	require.NoError(t, err)

	path, err := j.Run(context.Background())
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.NoError(t, statErr)
}

func TestReportJob_Validation(t *testing.T) {
	_, err := NewReportJob(newExporter(), t.TempDir(), "fortnight", nil, zap.NewNop())
	assert.Error(t, err)

	j, err := NewReportJob(newExporter(), t.TempDir(), "week", nil, zap.NewNop())
	require.NoError(t, err)
	assert.Error(t, j.Start("every tuesday"))
	require.NoError(t, j.Start("@daily"))
	j.Stop()
}

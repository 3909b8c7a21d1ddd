// Package jobs runs the scheduled report export.
package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/MikeMC777/storefront/internal/config"
	"github.com/MikeMC777/storefront/internal/export"
	"github.com/MikeMC777/storefront/internal/report"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

const runTimeout = 2 * time.Minute

// Mailer delivers a written report.
type Mailer interface {
	Send(subject, body, attachment string) error
}

type SMTPMailer struct {
	cfg config.SMTP
}

func NewSMTPMailer(cfg config.SMTP) *SMTPMailer { return &SMTPMailer{cfg: cfg} }

func (m *SMTPMailer) Send(subject, body, attachment string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if attachment != "" {
		msg.Attach(attachment)
	}
	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	return d.DialAndSend(msg)
}

// ReportJob writes the comprehensive report for a fixed time frame into Dir.
type ReportJob struct {
	exp       *export.Exporter
	dir       string
	timeFrame report.TimeFrame
	mailer    Mailer
	log       *zap.Logger
	sched     *cron.Cron
}

// NewReportJob validates tf up front. mailer may be nil.
func NewReportJob(exp *export.Exporter, dir, tf string, mailer Mailer, log *zap.Logger) (*ReportJob, error) {
	frame, ok := report.ParseTimeFrame(tf)
	if !ok {
		return nil, fmt.Errorf("report job: unknown time frame %q", tf)
	}
	return &ReportJob{exp: exp, dir: dir, timeFrame: frame, mailer: mailer, log: log.Named("jobs")}, nil
}

// Run exports once and returns the written path.
func (j *ReportJob) Run(ctx context.Context) (string, error) {
	f, err := j.exp.Export(ctx, export.Request{
		Kind:    report.KindComprehensive,
		Options: report.Options{TimeFrame: j.timeFrame},
		Format:  export.FormatCSV,
	})
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(j.dir, f.Name)
	if err := os.WriteFile(path, f.Body, 0o644); err != nil {
		return "", err
	}
	j.log.Info("report written", zap.String("path", path))

	if j.mailer != nil {
		subject := "Comprehensive report (" + string(j.timeFrame) + ")"
		if err := j.mailer.Send(subject, "Attached: "+f.Name, path); err != nil {
			return path, fmt.Errorf("mail report: %w", err)
		}
		j.log.Info("report mailed", zap.String("file", f.Name))
	}
	return path, nil
}

// Start schedules Run on spec (standard cron with optional seconds, or a descriptor such as @daily).
func (j *ReportJob) Start(spec string) error {
	j.sched = cron.New(cron.WithParser(cronParser))
	_, err := j.sched.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				j.log.Error("report job panic", zap.Any("panic", r))
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if _, err := j.Run(ctx); err != nil {
			j.log.Error("report job", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("report job schedule %q: %w", spec, err)
	}
	j.sched.Start()
	j.log.Info("report job scheduled", zap.String("spec", spec), zap.String("timeframe", string(j.timeFrame)))
	return nil
}

// Stop waits for a running export to finish.
func (j *ReportJob) Stop() {
	if j.sched == nil {
		return
	}
	<-j.sched.Stop().Done()
}

package service

import (
	"errors"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// MailJob is a single confirmation mail waiting to be sent.
type MailJob struct {
	ID       string
	To       string
	Username string
	Token    string
}

// JobQueue hands outgoing mail to a fixed pool of background workers.
// Enqueue never blocks the HTTP caller and a failed send is only
// logged, delivery is best effort.
type JobQueue struct {
	jobs    chan *MailJob
	mailer  *Mailer
	workers int
}

func NewJobQueue(m *Mailer) *JobQueue {
	workers := viper.GetInt("mail.workers")
	if workers <= 0 {
		workers = 2
	}

	size := viper.GetInt("mail.queue_size")
	if size <= 0 {
		size = 64
	}

	return &JobQueue{
		jobs:    make(chan *MailJob, size),
		mailer:  m,
		workers: workers,
	}
}

func (q *JobQueue) StartWorkerPool() {
	for range q.workers {
		go q.worker()
	}
}

func (q *JobQueue) worker() {
	for job := range q.jobs {
		err := q.mailer.SendConfirmation(job.To, job.Username, job.Token)
		if err != nil {
			zap.L().Error("Failed to send confirmation mail",
				zap.String("job_id", job.ID),
				zap.Error(err))
			continue
		}

		zap.L().Debug("Confirmation mail sent", zap.String("job_id", job.ID))
	}
}

func (q *JobQueue) Enqueue(job *MailJob) error {
	select {
	case q.jobs <- job:
		zap.L().Debug("Confirmation mail enqueued", zap.String("job_id", job.ID))
		return nil
	default:
		return errors.New("mail queue full")
	}
}

package housekeeping

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartDailySweep schedules the sweep once per day at 01:00 server time.
// The returned scheduler should be shut down on process exit.
func StartDailySweep(svc *Service) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(1, 0, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()

			log.Println("housekeeping: daily sweep starting")
			res, err := svc.Sweep(ctx, time.Now())
			if err != nil {
				log.Printf("housekeeping: sweep failed: %v", err)
				return
			}
			log.Printf("housekeeping: sweep finished completed=%d failed=%d", res.Completed, res.Failed)
		}),
	)
	if err != nil {
		return nil, err
	}

	sched.Start()
	return sched, nil
}

package catalog

import "slices"

// AddRecipient subscribes an email to the schedule identified by the
// exact trigger, creating the schedule on first use. Emails behave as
// an insertion-ordered set, re-adding a subscribed email is a no-op.
func (s Store) AddRecipient(trigger Trigger, email string) error {
	exists, err := s.Schedules.Contains(trigger.Match)
	if err != nil {
		return err
	}
	if !exists {
		return s.Schedules.Insert(Schedule{
			Trigger: trigger,
			Emails:  []string{email},
		})
	}

	_, err = s.Schedules.Update(func(sched *Schedule) {
		if !slices.Contains(sched.Emails, email) {
			sched.Emails = append(sched.Emails, email)
		}
	}, trigger.Match)
	return err
}

// RemoveRecipient unsubscribes an email from every schedule that
// carries it. A schedule whose last recipient is removed is deleted
// entirely.
func (s Store) RemoveRecipient(email string) error {
	_, err := s.Schedules.Update(func(sched *Schedule) {
		kept := sched.Emails[:0:0]
		for _, e := range sched.Emails {
			if e != email {
				kept = append(kept, e)
			}
		}
		sched.Emails = kept
	}, scheduleHasEmail(email))
	if err != nil {
		return err
	}

	_, err = s.Schedules.Remove(func(sched Schedule) bool {
		return len(sched.Emails) == 0
	})
	return err
}

package constants

import "time"

const (
	// ToastTTL is how long a toast stays visible unless dismissed earlier
	ToastTTL = 5 * time.Second

	// NotificationPollInterval is the bell refresh period
	NotificationPollInterval = 120 * time.Second

	// Count-up animation for KPI tiles
	CountUpDuration = 1500 * time.Millisecond
	CountUpSteps    = 60
)

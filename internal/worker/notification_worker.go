package worker

import (
	"github.com/spec-kit/scholarship-service/internal/service"
)

// StartNotificationWorker registers notification handlers on the
// event dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cloudnook/mcpgw/internal/notify"
)

// NotificationsResponse is the response for GET /notifications.
type NotificationsResponse struct {
	Body struct {
		Notifications []notify.Notification `doc:"Notifications raised since the last call, oldest first" json:"notifications"`
	}
}

// RegisterNotificationRoutes sets up the notification route.
func RegisterNotificationRoutes(routerAPI huma.API, source NotificationSource, apiPathPrefix string) {
	notificationsAPI := huma.NewGroup(routerAPI, apiPathPrefix)
	tags := []string{"Notifications"}

	huma.Register(
		notificationsAPI,
		huma.Operation{
			OperationID: "drainNotifications",
			Method:      http.MethodGet,
			Summary:     "Take pending operator notifications",
			Description: "Each notification is returned once.",
			Tags:        tags,
		},
		func(ctx context.Context, _ *struct{}) (*NotificationsResponse, error) {
			return handleNotifications(source)
		},
	)
}

func handleNotifications(source NotificationSource) (*NotificationsResponse, error) {
	resp := &NotificationsResponse{}
	resp.Body.Notifications = source.Drain()
	if resp.Body.Notifications == nil {
		resp.Body.Notifications = []notify.Notification{}
	}
	return resp, nil
}

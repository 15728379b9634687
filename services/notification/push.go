package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"bookly/database/repository/device"
	"bookly/utils"
)

// FCMPushService broadcasts booking events to every registered admin
// device through Firebase Cloud Messaging. Tokens FCM reports as
// unregistered are pruned from the registry after a broadcast.
type FCMPushService struct {
	devices device.DeviceRepository
}

func NewFCMPushService(devices device.DeviceRepository) (*FCMPushService, error) {
	if devices == nil {
		return nil, fmt.Errorf("push service initialization error: device repository is nil")
	}
	return &FCMPushService{devices: devices}, nil
}

func (s *FCMPushService) Broadcast(ctx context.Context, title, body string, data map[string]string) error {
	logger := utils.GetLogger()
	if utils.FCMClient == nil {
		logger.Debug("push disabled, no FCM client configured")
		return nil
	}
	tokens, err := s.devices.TokenStrings()
	if err != nil {
		return fmt.Errorf("Broadcast: failed to load push tokens: %w", err)
	}
	if len(tokens) == 0 {
		return nil
	}

	var invalid []string
	delivered := 0
	for _, token := range tokens {
		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					ChannelID: "high_priority",
					Sound:     "default",
				},
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority":  "10",
					"apns-push-type": "alert",
				},
				Payload: &messaging.APNSPayload{
					Aps: &messaging.Aps{
						Sound: "default",
					},
				},
			},
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			if messaging.IsUnregistered(err) || errorutils.IsInvalidArgument(err) {
				invalid = append(invalid, token)
				continue
			}
			logger.Warn("push send failed", zap.Error(err))
			continue
		}
		delivered++
	}

	if len(invalid) > 0 {
		if err := s.devices.Remove(invalid); err != nil {
			logger.Warn("failed to prune invalid push tokens", zap.Error(err))
		} else {
			logger.Info("pruned invalid push tokens", zap.Int("count", len(invalid)))
		}
	}
	logger.Info("push broadcast complete",
		zap.String("title", title),
		zap.Int("delivered", delivered),
		zap.Int("invalid", len(invalid)))
	return nil
}

package notifications

import (
	"fmt"

	"github.com/xconstruct/go-pushbullet"

	"marquee/internal/utils"
)

// PushbulletClient implements the Notifier interface for Pushbullet.
type PushbulletClient struct {
	apiKey string
	pb     *pushbullet.Client
	logger *utils.Logger
}

// NewPushbulletClient creates a new client for sending Pushbullet notifications.
func NewPushbulletClient(apiKey string, logger *utils.Logger) *PushbulletClient {
	pb := pushbullet.New(apiKey)
	return &PushbulletClient{
		apiKey: apiKey,
		pb:     pb,
		logger: logger,
	}
}

// sendPush sends a note to all of the user's devices.
func (c *PushbulletClient) sendPush(title, body string) error {
	// The first argument to PushNote is the device iden. Empty means all devices.
	err := c.pb.PushNote("", title, body)
	return err
}

// NotifyCatalogUnreadable alerts that a data file failed to load during
// the periodic census.
func (c *PushbulletClient) NotifyCatalogUnreadable(detail string) {
	if err := c.sendPush("Marquee: catalog unreadable", detail); err != nil {
		c.logger.Error("Error sending Pushbullet notification:", err)
	}
}

// NotifyCatalogRecovered alerts that a previously broken catalog loads
// again, with the current counts.
func (c *PushbulletClient) NotifyCatalogRecovered(movies, series int) {
	body := fmt.Sprintf("Catalog readable again: %d movies, %d series", movies, series)
	if err := c.sendPush("Marquee: catalog recovered", body); err != nil {
		c.logger.Error("Error sending Pushbullet notification:", err)
	}
}

// Test sends a test notification to verify the API key works.
func (c *PushbulletClient) Test() error {
	return c.sendPush("Marquee", "Test notification")
}

package logger

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Setup switches to JSON output outside development and applies the level.
func Setup(dev bool, level string) {
	Log.SetOutput(os.Stdout)
	if dev {
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		Log.SetFormatter(&logrus.JSONFormatter{})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)
}

func WithRequest(c *fiber.Ctx) *logrus.Entry {
	entry := Log.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
	})
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		entry = entry.WithField("request_id", rid)
	}
	return entry
}

func WithJob(name string) *logrus.Entry {
	return Log.WithField("job", name)
}

// Package notify delivers rendered reports to slack
package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"
	"github.com/slack-go/slack"
)

// ErrNoChannel is returned when neither an explicit nor a default channel is set
var ErrNoChannel = errors.New("slack channel is not set")

// SlackNotifier uploads files to slack channels
type SlackNotifier struct {
	client         *slack.Client
	defaultChannel string
}

// NewSlackNotifier makes a notifier, apiURL is optional and used to point the client to a test server
func NewSlackNotifier(token, defaultChannel, apiURL string) *SlackNotifier {
	var opts []slack.Option
	if apiURL != "" {
		opts = append(opts, slack.OptionAPIURL(apiURL))
	}
	return &SlackNotifier{client: slack.New(token, opts...), defaultChannel: defaultChannel}
}

// UploadFile uploads data as a file with a caption, an empty channel means the default one
func (n *SlackNotifier) UploadFile(ctx context.Context, channel string, data []byte, filename, caption string) error {
	if channel == "" {
		channel = n.defaultChannel
	}
	if channel == "" {
		return ErrNoChannel
	}
	if len(data) == 0 {
		return fmt.Errorf("upload %s: empty file", filename)
	}

	summary, err := n.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        channel,
		Filename:       filename,
		Title:          filename,
		FileSize:       len(data),
		Reader:         bytes.NewReader(data),
		InitialComment: caption,
	})
	if err != nil {
		return fmt.Errorf("upload %s to %s: %w", filename, channel, err)
	}
	lgr.Printf("[INFO] uploaded %s (%d bytes) to slack channel %s, file %s", filename, len(data), channel, summary.ID)
	return nil
}

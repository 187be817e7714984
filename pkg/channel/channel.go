package channel

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/selectdb/feed_observer/pkg/subject"
	"github.com/selectdb/feed_observer/pkg/utils"
)

// Upload is the snapshot pushed to subscribers when a video is published.
type Upload struct {
	Channel string    `json:"channel"`
	Title   string    `json:"title"`
	Seq     int       `json:"seq"` // 1 for the first upload
	Time    time.Time `json:"time"`
}

func validateUpload(u Upload) error {
	if strings.TrimSpace(u.Title) == "" {
		return fmt.Errorf("video title of channel %s is blank", u.Channel)
	}
	return nil
}

type Channel struct {
	name    string
	subject *subject.Subject[Upload]

	mu     sync.Mutex
	videos []string
}

func New(name string) *Channel {
	return &Channel{
		name:    name,
		subject: subject.New(name, Upload{Channel: name}, subject.WithValidator(validateUpload)),
	}
}

func (c *Channel) Name() string {
	return c.name
}

func (c *Channel) Subscribe(observer utils.Observer[Upload]) utils.Handle {
	return c.subject.Attach(observer)
}

func (c *Channel) Unsubscribe(observer utils.Observer[Upload]) {
	c.subject.Detach(observer)
}

func (c *Channel) Subscribers() int {
	return c.subject.Len()
}

// Videos lists the uploaded titles, oldest first.
func (c *Channel) Videos() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.videos...)
}

// Upload publishes title. The video is kept even if some subscribers failed
// to receive the notification.
func (c *Channel) Upload(title string) error {
	return c.subject.Mutate(func(last Upload) Upload {
		upload := Upload{
			Channel: c.name,
			Title:   title,
			Seq:     last.Seq + 1,
			Time:    time.Now(),
		}
		// videos follow Seq order, the subject lock is held here
		if validateUpload(upload) == nil {
			c.mu.Lock()
			c.videos = append(c.videos, title)
			c.mu.Unlock()
		}
		return upload
	})
}

type Subscriber struct {
	name string
	out  io.Writer
}

func NewSubscriber(name string, out io.Writer) *Subscriber {
	return &Subscriber{
		name: name,
		out:  out,
	}
}

func (s *Subscriber) Name() string {
	return fmt.Sprintf("Subscriber(%s)", s.name)
}

func (s *Subscriber) Update(u Upload) error {
	_, err := fmt.Fprintf(s.out, "Hey %s, %s just uploaded '%s'!\n", s.name, u.Channel, u.Title)
	return err
}

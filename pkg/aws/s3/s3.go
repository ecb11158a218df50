package s3

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const (
	Scheme = "s3"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	Get(bucket string, key string) ([]byte, error)
}

type Client struct {
	cfg      *aws.Config
	s3Client s3iface.S3API
	session  *session.Session
}

func New() *Client {
	cfg := aws.NewConfig()
	return &Client{
		cfg: cfg,
	}
}

func (c *Client) Connect() error {
	awsSession, err := session.NewSession(c.cfg)
	if err != nil {
		return err
	}
	c.session = awsSession
	c.s3Client = s3.New(c.session, c.cfg)
	return nil
}

// Get downloads a whole object.
func (c *Client) Get(bucket string, key string) ([]byte, error) {
	out, err := c.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

// IsURL reports whether location is an s3://bucket/key URL.
func IsURL(location string) bool {
	return strings.HasPrefix(location, Scheme+"://")
}

// ParseURL splits an s3://bucket/key URL into its bucket and key.
func ParseURL(location string) (bucket string, key string, err error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", "", err
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != Scheme || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 url: [%s]", location)
	}
	return u.Host, key, nil
}

package ssm

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ssm"
	"github.com/aws/aws-sdk-go/service/ssm/ssmiface"
)

// Ensure Client implements ClientIFace
var _ ClientIFace = (*Client)(nil)

type ClientIFace interface {
	Connect() error
	GetParameter(name string) (string, error)
}

// Client reads secrets from AWS Systems Manager Parameter Store.
type Client struct {
	cfg       *aws.Config
	ssmClient ssmiface.SSMAPI
	session   *session.Session
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
	c.ssmClient = ssm.New(c.session, c.cfg)
	return nil
}

// GetParameter returns the decrypted value of a parameter.
func (c *Client) GetParameter(name string) (string, error) {
	out, err := c.ssmClient.GetParameter(&ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", err
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("parameter has no value: [%s]", name)
	}
	return *out.Parameter.Value, nil
}

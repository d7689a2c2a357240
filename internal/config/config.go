package config

import "httpmsg/types"

type Config interface {
	Mode() types.OutputMode

	ProtocolVersion() string
	InferHost() bool

	ServerName() string
	DefaultContentType() string

	MaxBodySize() int64

	ForwardedFor() bool
	RequestIDLength() int
}

func MustLoad() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	cfg, err := parse()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *config) Mode() types.OutputMode     { return c.mode }
func (c *config) ProtocolVersion() string    { return c.protocolVersion }
func (c *config) InferHost() bool            { return c.inferHost }
func (c *config) ServerName() string         { return c.serverName }
func (c *config) DefaultContentType() string { return c.defaultContentType }
func (c *config) MaxBodySize() int64         { return c.maxBodySize }
func (c *config) ForwardedFor() bool         { return c.forwardedFor }
func (c *config) RequestIDLength() int       { return c.requestIDLength }

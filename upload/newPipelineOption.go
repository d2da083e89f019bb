package upload

import (
	"net/http"

	"github.com/drivedash/drivedash/options"
)

const (
	optionNameHTTPClient = "httpClient"
	optionNameEndpoint   = "endpoint"
)

// WithHTTPClient replaces the transport used for upload requests.
func WithHTTPClient(client *http.Client) options.Option[Pipeline] {
	return &httpClientOpt{client: client}
}

type httpClientOpt struct {
	client *http.Client
}

func (o *httpClientOpt) Apply(p *Pipeline) {
	if o.client != nil {
		p.client = o.client
	}
}

func (o *httpClientOpt) OptionName() string {
	return optionNameHTTPClient
}

// WithEndpoint overrides the upload endpoint, for tests.
func WithEndpoint(endpoint string) options.Option[Pipeline] {
	return &endpointOpt{endpoint: endpoint}
}

type endpointOpt struct {
	endpoint string
}

func (o *endpointOpt) Apply(p *Pipeline) {
	if o.endpoint != "" {
		p.endpoint = o.endpoint
	}
}

func (o *endpointOpt) OptionName() string {
	return optionNameEndpoint
}

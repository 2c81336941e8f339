package buildservice

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sadanandam5592/orca/pkg/models"
	"github.com/sadanandam5592/orca/pkg/tasks"
)

const artifactsPath = "/builds/artifacts/{buildNumber}/{master}/{job}"

// Client talks to a remote build service over HTTP. Retries are left to
// tasks.Execute: transient failures come back marked with tasks.Retryable.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) GetArtifacts(ctx context.Context, buildNumber int, propertyFile, master, job string) ([]models.Artifact, error) {
	var artifacts []models.Artifact

	req := c.http.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"buildNumber": strconv.Itoa(buildNumber),
			"master":      master,
		}).
		// job names may contain folders, sent as-is
		SetRawPathParam("job", job).
		SetResult(&artifacts)
	if propertyFile != "" {
		req.SetQueryParam("propertyFile", propertyFile)
	}

	resp, err := req.Get(artifactsPath)
	if err != nil {
		return nil, tasks.Retryable(fmt.Errorf("could not fetch artifacts for %s/%s #%d: %w", master, job, buildNumber, err))
	}

	code := resp.StatusCode()
	switch {
	case code == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrBuildNotFound, buildKey(master, job, buildNumber))
	case retryableStatus(code):
		return nil, tasks.Retryable(fmt.Errorf("build service returned %d for %s/%s #%d", code, master, job, buildNumber))
	case resp.IsError():
		return nil, fmt.Errorf("build service returned %d for %s/%s #%d: %s", code, master, job, buildNumber, resp.String())
	}
	return artifacts, nil
}

func retryableStatus(code int) bool {
	return code >= 500 || code == http.StatusTooManyRequests || code == http.StatusRequestTimeout
}

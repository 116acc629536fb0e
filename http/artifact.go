// Package http provides an HTTP-based implementation of jdoc2md.ArtifactService
// for Maven repositories.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/beevik/etree"
	"github.com/fwojciec/jdoc2md"
)

// DefaultBaseURL is the Maven Central repository.
const DefaultBaseURL = "https://repo1.maven.org/maven2"

// DefaultTimeout is the default timeout for a single HTTP request.
const DefaultTimeout = 2 * time.Minute

// DefaultRetryDelays returns the backoff delays for download retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// Ensure ArtifactService implements jdoc2md.ArtifactService at compile time.
var _ jdoc2md.ArtifactService = (*ArtifactService)(nil)

// ArtifactService resolves versions and downloads javadoc jars from a
// Maven repository.
type ArtifactService struct {
	client  *http.Client
	baseURL string
	delays  []time.Duration
}

// Option configures an ArtifactService.
type Option func(*ArtifactService)

// WithClient sets the HTTP client.
func WithClient(c *http.Client) Option {
	return func(s *ArtifactService) {
		s.client = c
	}
}

// WithBaseURL sets the repository root. Defaults to DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(s *ArtifactService) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRetryDelays sets the delays between download attempts.
// Defaults to DefaultRetryDelays.
func WithRetryDelays(d []time.Duration) Option {
	return func(s *ArtifactService) {
		s.delays = d
	}
}

// NewArtifactService creates a new ArtifactService.
func NewArtifactService(opts ...Option) *ArtifactService {
	s := &ArtifactService{
		client:  &http.Client{Timeout: DefaultTimeout},
		baseURL: DefaultBaseURL,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LatestVersion reads the artifact's maven-metadata.xml and returns the
// latest version it declares, falling back to the release version and
// then to the highest listed version.
func (s *ArtifactService) LatestVersion(ctx context.Context, group, artifact string) (string, error) {
	if err := (jdoc2md.Coordinate{Group: group, Artifact: artifact}).Validate(); err != nil {
		return "", err
	}

	metadataURL := s.artifactURL(group, artifact) + "/maven-metadata.xml"
	body, err := s.get(ctx, metadataURL)
	if err != nil {
		return "", err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return "", fmt.Errorf("parsing maven metadata: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return "", fmt.Errorf("empty maven metadata")
	}

	versioning := root.SelectElement("versioning")
	if versioning == nil {
		return "", jdoc2md.Errorf(jdoc2md.ENOTFOUND, "no versions published for %s:%s", group, artifact)
	}

	for _, tag := range []string{"latest", "release"} {
		if el := versioning.SelectElement(tag); el != nil {
			if v := strings.TrimSpace(el.Text()); v != "" {
				return v, nil
			}
		}
	}

	var listed []string
	if versions := versioning.SelectElement("versions"); versions != nil {
		for _, el := range versions.SelectElements("version") {
			listed = append(listed, strings.TrimSpace(el.Text()))
		}
	}
	if v := highestVersion(listed); v != "" {
		return v, nil
	}

	return "", jdoc2md.Errorf(jdoc2md.ENOTFOUND, "no versions published for %s:%s", group, artifact)
}

// highestVersion returns the highest semantic version in the list,
// ignoring strings that do not parse.
func highestVersion(versions []string) string {
	var best *semver.Version
	var bestRaw string
	for _, raw := range versions {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = raw
		}
	}
	return bestRaw
}

// DownloadJavadoc downloads the coordinate's javadoc jar into dst.
// Transient failures are retried; dst is written only once the whole jar
// has been received.
func (s *ArtifactService) DownloadJavadoc(ctx context.Context, coord jdoc2md.Coordinate, dst io.Writer) error {
	if err := coord.Validate(); err != nil {
		return err
	}
	if coord.Version == "" {
		return jdoc2md.Errorf(jdoc2md.EINVALID, "version required to download %s", coord)
	}

	jarURL := fmt.Sprintf("%s/%s/%s-%s-javadoc.jar",
		s.artifactURL(coord.Group, coord.Artifact), coord.Version, coord.Artifact, coord.Version)

	body, err := withRetry(ctx, s.delays, func() ([]byte, error) {
		return s.get(ctx, jarURL)
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(dst, bytes.NewReader(body))
	return err
}

func (s *ArtifactService) artifactURL(group, artifact string) string {
	return s.baseURL + "/" + strings.ReplaceAll(group, ".", "/") + "/" + artifact
}

// get fetches url. Returns ENOTFOUND for HTTP 404.
func (s *ArtifactService) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, jdoc2md.Errorf(jdoc2md.ENOTFOUND, "%s not found", url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

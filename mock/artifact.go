package mock

import (
	"context"
	"io"

	"github.com/fwojciec/jdoc2md"
)

var _ jdoc2md.ArtifactService = (*ArtifactService)(nil)

// ArtifactService is a mock implementation of jdoc2md.ArtifactService.
type ArtifactService struct {
	LatestVersionFn   func(ctx context.Context, group, artifact string) (string, error)
	DownloadJavadocFn func(ctx context.Context, coord jdoc2md.Coordinate, dst io.Writer) error
}

func (s *ArtifactService) LatestVersion(ctx context.Context, group, artifact string) (string, error) {
	return s.LatestVersionFn(ctx, group, artifact)
}

func (s *ArtifactService) DownloadJavadoc(ctx context.Context, coord jdoc2md.Coordinate, dst io.Writer) error {
	return s.DownloadJavadocFn(ctx, coord, dst)
}

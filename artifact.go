package jdoc2md

import (
	"context"
	"io"
	"strings"
)

// Coordinate identifies a published library artifact.
type Coordinate struct {
	Group    string
	Artifact string

	// Version is empty when the latest published version is wanted.
	Version string
}

// Validate returns an error if the coordinate contains invalid fields.
func (c Coordinate) Validate() error {
	if c.Group == "" {
		return Errorf(EINVALID, "group required")
	}
	if c.Artifact == "" {
		return Errorf(EINVALID, "artifact required")
	}
	if strings.ContainsAny(c.Group+c.Artifact+c.Version, "/\\:") {
		return Errorf(EINVALID, "invalid coordinate %q", c.String())
	}
	return nil
}

// String returns the coordinate as "group:artifact[:version]".
func (c Coordinate) String() string {
	s := c.Group + ":" + c.Artifact
	if c.Version != "" {
		s += ":" + c.Version
	}
	return s
}

// DirName returns the name of the output directory for the coordinate's
// documentation: "artifact-version", with "latest" for an unknown version.
func (c Coordinate) DirName() string {
	artifact := c.Artifact
	if artifact == "" {
		artifact = "unknown"
	}
	version := c.Version
	if version == "" {
		version = "latest"
	}
	return artifact + "-" + version
}

// ArtifactService locates and downloads documentation archives from an
// artifact registry.
type ArtifactService interface {
	// LatestVersion returns the latest published version of an artifact.
	// Returns ENOTFOUND if the artifact is unknown to the registry.
	LatestVersion(ctx context.Context, group, artifact string) (string, error)

	// DownloadJavadoc streams the documentation archive of a fully
	// versioned coordinate into dst.
	// Returns ENOTFOUND if the registry has no such archive.
	DownloadJavadoc(ctx context.Context, coord Coordinate, dst io.Writer) error
}

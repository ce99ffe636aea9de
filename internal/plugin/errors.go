package plugin

import "errors"

var (
	// ErrWrongURI is returned when types are registered under another import.
	ErrWrongURI = errors.New("plugin: types must be registered under " + URI)

	// ErrInvalidManifest is returned for a malformed type manifest.
	ErrInvalidManifest = errors.New("plugin: invalid manifest")

	// ErrUnknownType is returned when looking up an unregistered type.
	ErrUnknownType = errors.New("plugin: unknown component type")

	// ErrInvalidVersion is returned for a version that is not "major.minor".
	ErrInvalidVersion = errors.New("plugin: invalid version")
)

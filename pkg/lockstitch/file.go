package lockstitch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContainerExt replaces the extension of an encrypted file.
const ContainerExt = ".claudo"

// splitExt returns path without its extension, and the extension without the dot.
func splitExt(path string) (base, ext string) {
	dotExt := filepath.Ext(path)
	return strings.TrimSuffix(path, dotExt), strings.TrimPrefix(dotExt, ".")
}

// checkExt rejects a stored extension that would move the output out of the container's directory.
func checkExt(ext string) error {
	if strings.ContainsAny(ext, "/\\\x00") {
		return fmt.Errorf("%w: stored extension %q contains a path separator or NUL", ErrMalformedContainer, ext)
	}
	return nil
}

// EncryptFile packs the file at path into a container written next to it as <base>.claudo, and returns the new path.
// The source file is left in place.
func (e *Engine) EncryptFile(path, password string, headSize int) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	base, ext := splitExt(path)
	packed, err := e.EncryptPayload(data, ext, password, headSize)
	if err != nil {
		return "", err
	}
	out := base + ContainerExt
	if err := writeOutput(path, out, packed); err != nil {
		return "", err
	}
	e.log.Debug().Str("source", path).Str("target", out).Msg("Encrypted file")
	return out, nil
}

// DecryptFile unpacks the container at path into <base>.<ext> using the extension stored in the container, and returns the new path.
// Nothing is written if the password doesn't match.
func (e *Engine) DecryptFile(path, password string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	payload, ext, err := e.DecryptPayload(data, password)
	if err != nil {
		return "", err
	}
	if err := checkExt(ext); err != nil {
		return "", err
	}
	out, _ := splitExt(path)
	if ext != "" {
		out += "." + ext
	}
	if err := writeOutput(path, out, payload); err != nil {
		return "", err
	}
	e.log.Debug().Str("source", path).Str("target", out).Msg("Decrypted file")
	return out, nil
}

// InspectFile reads the metadata of the container at path.
func (e *Engine) InspectFile(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	meta, err := e.Inspect(data)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Size:      len(data),
		Extension: meta.Extension,
		HeadSize:  meta.HeadSize,
		Media:     e.codec.IsMedia(meta.Extension),
	}, nil
}

// Info describes a container file.
type Info struct {
	Size      int
	Extension string
	HeadSize  int
	Media     bool
}

// writeOutput writes data to a temp file in the target directory and renames it into place, so a failed write never leaves a partial target.
func writeOutput(source, target string, data []byte) error {
	if filepath.Clean(source) == filepath.Clean(target) {
		return fmt.Errorf("%w: output path '%s' is the same as the input", ErrIOFailure, target)
	}
	dir, name := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	tmpName := tmp.Name()
	cleanup := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return cleanup(err)
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

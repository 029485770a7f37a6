package system

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// UnknownAppName is used when no bundle or executable name can be found.
const UnknownAppName = "Unknown App Name"

// ContainingBundle returns the .app directory that contains execPath, or ""
// when the executable does not live inside an app bundle.
func ContainingBundle(execPath string) string {
	if !strings.Contains(execPath, ".app/") {
		return ""
	}

	parts := strings.Split(execPath, "/")
	for i, part := range parts {
		if strings.HasSuffix(part, ".app") {
			return strings.Join(parts[:i+1], "/")
		}
	}
	return ""
}

// InfoPlistPath constructs the path to the Info.plist in an app bundle.
func InfoPlistPath(bundlePath string) string {
	return filepath.Join(bundlePath, "Contents", "Info.plist")
}

// PlistString returns the string value stored under key in the top-level
// dictionary of an XML property list. Binary plists are not supported.
func PlistString(plistPath, key string) (string, error) {
	f, err := os.Open(plistPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", plistPath, err)
	}
	defer func() { _ = f.Close() }()

	dec := xml.NewDecoder(f)
	depth := 0
	var lastKey string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return "", nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", plistPath, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			// plist > dict > key|string
			if depth != 3 {
				continue
			}
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return "", fmt.Errorf("failed to parse %s: %w", plistPath, err)
			}
			depth--
			switch t.Name.Local {
			case "key":
				lastKey = text
				continue
			case "string":
				if lastKey == key {
					return strings.TrimSpace(text), nil
				}
			}
			lastKey = ""
		case xml.EndElement:
			depth--
		}
	}
}

// BundleID extracts CFBundleIdentifier from an app bundle's Info.plist.
func BundleID(bundlePath string) string {
	if bundlePath == "" || !strings.HasSuffix(bundlePath, ".app") {
		return ""
	}
	id, _ := PlistString(InfoPlistPath(bundlePath), "CFBundleIdentifier")
	return id
}

// AppName returns the name shown to the user: MACPERM_APP_NAME, then the
// containing bundle's CFBundleDisplayName or CFBundleName, then the
// executable name.
func AppName() string {
	if name := GetString(EnvAppName, ""); name != "" {
		return name
	}

	execPath, err := os.Executable()
	if err != nil {
		return UnknownAppName
	}
	return appNameFor(execPath)
}

func appNameFor(execPath string) string {
	if bundlePath := ContainingBundle(execPath); bundlePath != "" {
		plist := InfoPlistPath(bundlePath)
		for _, key := range []string{"CFBundleDisplayName", "CFBundleName"} {
			if name, err := PlistString(plist, key); err == nil && name != "" {
				return name
			}
		}
		return strings.TrimSuffix(filepath.Base(bundlePath), ".app")
	}

	if name := ExtractAppNameFromPath(execPath); name != "" {
		return name
	}
	return UnknownAppName
}

// ClientID returns the identifier TCC records for this process: the bundle
// identifier when running inside a bundle, otherwise the executable path.
func ClientID() (string, error) {
	if id := GetString(EnvBundleID, ""); id != "" {
		return id, nil
	}

	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	if id := BundleID(ContainingBundle(execPath)); id != "" {
		return id, nil
	}
	return execPath, nil
}

// ExtractAppNameFromPath extracts a reasonable app name from an executable path.
// Only alphanumeric extensions are stripped.
func ExtractAppNameFromPath(execPath string) string {
	if execPath == "" {
		return ""
	}

	base := filepath.Base(execPath)
	ext := filepath.Ext(base)
	if len(ext) < 2 {
		return base
	}
	for _, r := range ext[1:] {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return base
		}
	}
	return strings.TrimSuffix(base, ext)
}

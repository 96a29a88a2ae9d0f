package catalog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/resolver"
)

const (
	// DefaultVersionFile is the blob holding a container's default version.
	DefaultVersionFile = "defaultVersion.txt"

	// DefaultVersionElement is the metadata element naming a blob's version.
	DefaultVersionElement = "Version"

	// maxListingSize bounds a single blob listing response.
	maxListingSize = 16 << 20

	// maxPointerSize bounds the default version pointer.
	maxPointerSize = 64 << 10
)

// RemoteProvider reads a platform's catalog from an SDK storage container.
//
// The container listing at {BaseURL}/{Platform}?restype=container&comp=list&include=metadata
// enumerates blobs; each blob's metadata element named VersionElement
// (matched case-insensitively) contributes a version. When SDKElement is set
// the listing describes runtime/SDK pairs: VersionElement names the runtime
// and SDKElement the SDK that ships it. The default version is the first
// non-comment line of {BaseURL}/{Platform}/defaultVersion.txt.
type RemoteProvider struct {
	Platform       string
	BaseURL        string
	VersionElement string
	SDKElement     string
	Client         *http.Client
	Logger         *slog.Logger
}

var _ Provider = (*RemoteProvider)(nil)

// Source returns SourceRemote.
func (p *RemoteProvider) Source() Source {
	return SourceRemote
}

// Catalog fetches the listing then the default pointer. Transport failures,
// non-2xx responses and undecodable listings are marked errors.ErrCatalogLoad;
// an empty BaseURL is marked errors.ErrConfiguration.
func (p *RemoteProvider) Catalog(ctx context.Context) (*Catalog, error) {
	base, err := p.baseURL()
	if err != nil {
		return nil, err
	}

	logger := p.Logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}
	logger.Debug("listing available versions", "platform", p.Platform, "storage", base)

	versions, sdks, err := p.listVersions(ctx, base)
	if err != nil {
		return nil, err
	}

	def, err := p.defaultVersion(ctx, base)
	if err != nil {
		return nil, err
	}
	logger.Debug("resolved default version", "platform", p.Platform, "default", def)

	cat := &Catalog{
		Platform:  p.Platform,
		Source:    SourceRemote,
		Supported: resolver.Sort(versions),
		Default:   def,
	}
	if p.SDKElement != "" {
		cat.SDKVersions = sdks
	}
	return cat, nil
}

func (p *RemoteProvider) baseURL() (string, error) {
	base := strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	if base == "" {
		err := errors.Wrapf(errors.ErrConfiguration, "sdk_storage_url is required to list %s versions", p.Platform)
		return "", errors.WithHint(err, "Set sdk_storage_url or PLATDETECT_SDK_STORAGE_URL, or disable dynamic_install")
	}
	if _, err := url.Parse(base); err != nil {
		return "", errors.Mark(errors.Wrapf(err, "parsing sdk_storage_url"), errors.ErrConfiguration)
	}
	return base, nil
}

// blobListing is the subset of the container listing that is consulted.
type blobListing struct {
	Blobs      []blob `xml:"Blobs>Blob"`
	NextMarker string `xml:"NextMarker"`
}

type blob struct {
	Name     string `xml:"Name"`
	Metadata struct {
		Items []metadataItem `xml:",any"`
	} `xml:"Metadata"`
}

type metadataItem struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (b blob) metadata(name string) (string, bool) {
	for _, item := range b.Metadata.Items {
		if strings.EqualFold(item.XMLName.Local, name) {
			return strings.TrimSpace(item.Value), true
		}
	}
	return "", false
}

// listVersions walks the listing, following continuation markers.
func (p *RemoteProvider) listVersions(ctx context.Context, base string) ([]string, map[string]string, error) {
	element := p.VersionElement
	if element == "" {
		element = DefaultVersionElement
	}

	var (
		versions []string
		sdks     = make(map[string]string)
		marker   string
	)
	for {
		listURL := fmt.Sprintf("%s/%s?restype=container&comp=list&include=metadata", base, p.Platform)
		if marker != "" {
			listURL += "&marker=" + url.QueryEscape(marker)
		}

		body, err := p.get(ctx, listURL, maxListingSize)
		if err != nil {
			return nil, nil, err
		}

		var listing blobListing
		if err := xml.NewDecoder(bytes.NewReader(body)).Decode(&listing); err != nil {
			return nil, nil, errors.Mark(
				errors.Wrapf(err, "decoding %s version listing", p.Platform),
				errors.ErrCatalogLoad)
		}

		for _, b := range listing.Blobs {
			version, ok := b.metadata(element)
			if !ok || version == "" {
				continue
			}
			versions = append(versions, version)
			if p.SDKElement != "" {
				if sdk, ok := b.metadata(p.SDKElement); ok {
					sdks[version] = sdk
				}
			}
		}

		if listing.NextMarker == "" || listing.NextMarker == marker {
			break
		}
		marker = listing.NextMarker
	}

	return versions, sdks, nil
}

func (p *RemoteProvider) defaultVersion(ctx context.Context, base string) (string, error) {
	pointerURL := fmt.Sprintf("%s/%s/%s", base, p.Platform, DefaultVersionFile)

	body, err := p.get(ctx, pointerURL, maxPointerSize)
	if err != nil {
		return "", err
	}

	def := ParseDefaultVersion(string(body))
	if def == "" {
		return "", errors.Mark(
			errors.Newf("default version for %s is empty", p.Platform),
			errors.ErrCatalogLoad)
	}
	return def, nil
}

// ParseDefaultVersion returns the first line of a default-version pointer
// that is neither blank nor a comment ("#" or "//"), trimmed.
func ParseDefaultVersion(text string) string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}
		return line
	}
	return ""
}

func (p *RemoteProvider) get(ctx context.Context, rawURL string, limit int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "building request"), errors.ErrConfiguration)
	}

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "fetching %s catalog", p.Platform),
			errors.ErrCatalogLoad)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, errors.Mark(
			errors.Newf("fetching %s catalog: %s returned %s", p.Platform, req.URL.Path, resp.Status),
			errors.ErrCatalogLoad)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "reading %s catalog response", p.Platform),
			errors.ErrCatalogLoad)
	}
	if int64(len(body)) > limit {
		return nil, errors.Mark(
			errors.Newf("%s catalog response exceeds %d bytes", p.Platform, limit),
			errors.ErrCatalogLoad)
	}
	return body, nil
}

package creative

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/adsmood/ctv-vast-engine/errortypes"
)

// Fetcher loads creative descriptors for the VAST endpoints. The production
// editor persists creatives elsewhere; within this module the file-backed
// implementation below is the reference collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*Descriptor, error)
}

// NotFoundError is returned when a creative id has no stored descriptor.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf(`creative "%s" not found`, e.ID)
}

// NewFileFetcher _immediately_ loads creative descriptors from local files.
// These are stored in memory for low-latency reads.
//
// This expects each file in the directory to be named "{creative_id}.json".
// For example, when asked to fetch the creative with ID == "ad-1", it will
// return the data from "directory/ad-1.json".
func NewFileFetcher(directory string) (Fetcher, error) {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	stored := make(map[string]*Descriptor, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		fileData, err := os.ReadFile(directory + "/" + entry.Name())
		if err != nil {
			return nil, err
		}

		var descriptor Descriptor
		if err := json.Unmarshal(fileData, &descriptor); err != nil {
			return nil, &errortypes.MalformedCreative{Message: fmt.Sprintf("failed to decode %s: %v", entry.Name(), err)}
		}
		if err := descriptor.Validate(); err != nil {
			return nil, err
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		if descriptor.ID != id {
			glog.Warningf("creative file %s declares id %q; using the filename id", entry.Name(), descriptor.ID)
			descriptor.ID = id
		}
		stored[id] = &descriptor
	}

	return &eagerFetcher{stored: stored}, nil
}

type eagerFetcher struct {
	stored map[string]*Descriptor
}

func (f *eagerFetcher) Fetch(ctx context.Context, id string) (*Descriptor, error) {
	descriptor, ok := f.stored[id]
	if !ok {
		return nil, NotFoundError{ID: id}
	}
	return descriptor, nil
}

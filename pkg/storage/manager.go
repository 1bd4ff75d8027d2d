package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/beshgebeya/pos/config"
	"github.com/beshgebeya/pos/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk = "local"
)

// Connect boots the local disk and, when S3_BUCKET is set, the s3 disk.
// An s3 disk that fails to configure is logged and left out.
func Connect(ctx context.Context) {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()
	disks["local"] = NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageS3Bucket() == "" {
		return
	}
	d, err := newS3Disk(ctx, s3Options{
		Bucket:   config.StorageS3Bucket(),
		Region:   config.StorageS3Region(),
		Key:      config.StorageS3Key(),
		Secret:   config.StorageS3Secret(),
		Endpoint: config.StorageS3Endpoint(),
		BaseURL:  config.StorageS3URL(),
	})
	if err != nil {
		logger.Warn("storage: s3 disk disabled", "error", err)
		return
	}
	disks["s3"] = d
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	managerMu.RLock()
	defer managerMu.RUnlock()

	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func Default() (Disk, error) {
	managerMu.RLock()
	name := defaultDisk
	managerMu.RUnlock()
	return Use(name)
}

// RegisterDisk installs d under name, replacing any previous disk.
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	defer managerMu.Unlock()
	disks[name] = d
}

// SetDefault changes the disk Default returns.
func SetDefault(name string) {
	managerMu.Lock()
	defer managerMu.Unlock()
	defaultDisk = name
}

// Names lists configured disks.
func Names() []string {
	managerMu.RLock()
	defer managerMu.RUnlock()
	out := make([]string, 0, len(disks))
	for name := range disks {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

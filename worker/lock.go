package worker

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LockInfo is the on-disk representation of a held bootstrap lock.
type LockInfo struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	AcquiredAt  time.Time `json:"acquired_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Environment string    `json:"environment"`
}

// LockManager serializes table bootstrap across processes on one host with
// a lock file. Only one instance should issue CreateTable calls at a time.
type LockManager struct {
	lockFilePath string
	lockTimeout  time.Duration
	environment  string
}

// NewLockManager creates a new lock manager
func NewLockManager(lockPath string, timeout time.Duration, env string) *LockManager {
	return &LockManager{
		lockFilePath: lockPath,
		lockTimeout:  timeout,
		environment:  env,
	}
}

// AcquireLock takes the bootstrap lock for ownerID, extending it when this
// owner already holds it. A non-expired lock held by another owner blocks.
func (lm *LockManager) AcquireLock(ownerID string) (*LockInfo, error) {
	if err := os.MkdirAll(filepath.Dir(lm.lockFilePath), 0755); err != nil {
		return nil, err
	}

	if existing, err := lm.readLockFile(); err == nil {
		if time.Now().Before(existing.ExpiresAt) {
			if existing.Owner != ownerID || existing.Environment != lm.environment {
				return nil, fmt.Errorf("lock held by %s until %s", existing.Owner, existing.ExpiresAt)
			}
			existing.ExpiresAt = time.Now().Add(lm.lockTimeout)
			if err := lm.writeLockFile(existing); err != nil {
				return nil, fmt.Errorf("failed to extend lock: %w", err)
			}
			return existing, nil
		}
	}

	lockInfo := &LockInfo{
		ID:          fmt.Sprintf("bootstrap-lock-%d", time.Now().UnixNano()),
		Owner:       ownerID,
		AcquiredAt:  time.Now(),
		ExpiresAt:   time.Now().Add(lm.lockTimeout),
		Environment: lm.environment,
	}

	if err := lm.writeLockFile(lockInfo); err != nil {
		return nil, fmt.Errorf("failed to create lock file: %w", err)
	}
	return lockInfo, nil
}

// ReleaseLock drops the lock when held by ownerID.
func (lm *LockManager) ReleaseLock(ownerID string) error {
	existing, err := lm.readLockFile()
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if existing.Owner != ownerID {
		return fmt.Errorf("cannot release lock owned by %s", existing.Owner)
	}
	return os.Remove(lm.lockFilePath)
}

func (lm *LockManager) readLockFile() (*LockInfo, error) {
	data, err := os.ReadFile(lm.lockFilePath)
	if err != nil {
		return nil, err
	}

	var lockInfo LockInfo
	if err := json.Unmarshal(data, &lockInfo); err != nil {
		return nil, fmt.Errorf("failed to parse lock file: %w", err)
	}
	return &lockInfo, nil
}

func (lm *LockManager) writeLockFile(lockInfo *LockInfo) error {
	data, err := json.MarshalIndent(lockInfo, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(lm.lockFilePath, data, 0644)
}

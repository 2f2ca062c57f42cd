package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/pactify-backend/internal/modules/contracts/wizard"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
)

const (
	wizardKeyPrefix  = "wizard:"
	maxUpdateRetries = 3
)

var ErrConcurrentUpdate = errors.New("wizard session changed concurrently")

// WizardStore keeps wizard sessions as JSON values with a sliding TTL.
type WizardStore struct {
	rdb goredis.UniversalClient
	ttl time.Duration
	log *logger.Logger
	now func() time.Time
}

func NewWizardStore(rdb goredis.UniversalClient, ttl time.Duration, log *logger.Logger) *WizardStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &WizardStore{
		rdb: rdb,
		ttl: ttl,
		log: log.With("store", "RedisWizardStore"),
		now: time.Now,
	}
}

func wizardKey(id uuid.UUID) string { return wizardKeyPrefix + id.String() }

func (s *WizardStore) Create(ctx context.Context, sess *wizard.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	ok, err := s.rdb.SetNX(ctx, wizardKey(sess.ID), raw, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return fmt.Errorf("wizard session %s already exists", sess.ID)
	}
	return nil
}

func (s *WizardStore) Get(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error) {
	raw, err := s.rdb.Get(ctx, wizardKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, wizard.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodeOwned(raw, ownerID)
}

// Update runs fn on the stored session inside a WATCH transaction. When fn
// fails nothing is written and the unmodified session is returned with the error.
func (s *WizardStore) Update(ctx context.Context, ownerID, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	key := wizardKey(id)
	var (
		result *wizard.Session
		fnErr  error
	)

	txf := func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return wizard.ErrSessionNotFound
		}
		if err != nil {
			return err
		}
		sess, err := decodeOwned(raw, ownerID)
		if err != nil {
			return err
		}
		original := sess.Clone()
		if fnErr = fn(sess); fnErr != nil {
			result = original
			return nil
		}
		sess.UpdatedAt = s.now().UTC()
		out, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = sess
		return nil
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			s.log.Debug("Wizard session watch conflict, retrying", "session_id", id, "attempt", attempt+1)
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, fnErr
	}
	return nil, ErrConcurrentUpdate
}

func (s *WizardStore) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.Get(ctx, ownerID, id); err != nil {
		return err
	}
	return s.rdb.Del(ctx, wizardKey(id)).Err()
}

func decodeOwned(raw []byte, ownerID uuid.UUID) (*wizard.Session, error) {
	var sess wizard.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode wizard session: %w", err)
	}
	if sess.OwnerID != ownerID {
		return nil, wizard.ErrSessionNotFound
	}
	return &sess, nil
}

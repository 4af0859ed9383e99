// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package host executes calls into the builtin contracts, one at a time,
// against persistent contract storage.
package host

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vechain/govstake/builtin"
	"github.com/vechain/govstake/builtin/staking/reverts"
	"github.com/vechain/govstake/kv"
	"github.com/vechain/govstake/log"
	"github.com/vechain/govstake/metrics"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/xenv"
)

var logger = log.WithContext("pkg", "host")

var metricCallDuration = metrics.LazyLoadHistogramVec("host_call_duration_ms", []string{"method", "result"}, metrics.Bucket10s)

const (
	metaBucket = kv.Bucket("m")
	callBucket = kv.Bucket("c")
)

var (
	keyLastTimestamp = []byte("last-timestamp")
	keyBootstrapped  = []byte("bootstrapped")
)

var (
	ErrTimestampRegression = errors.New("host: timestamp before last executed call")
	ErrFutureTimestamp     = errors.New("host: timestamp ahead of host clock")
	ErrManualTime          = errors.New("host: call timestamps are not accepted")
	ErrKnownCall           = errors.New("host: call already executed")
	ErrWriteProtection     = errors.New("host: method is not read-only")
	ErrBootstrapped        = errors.New("host: state already bootstrapped")
	ErrNotBootstrapped     = errors.New("host: state not bootstrapped")
)

// Call is a request to run a contract method. Caller is trusted as given;
// calls from outside the process reach the host through an authenticated
// envelope.
type Call struct {
	ID        thor.Bytes32 // zero for in-process calls, which are not replay checked
	Caller    thor.Address
	Contract  thor.Address
	Method    string
	Args      json.RawMessage
	Timestamp uint64 // zero means the host clock
}

// Receipt is the outcome of an executed call.
type Receipt struct {
	Timestamp uint64        `json:"timestamp"`
	Reverted  bool          `json:"reverted"`
	Output    any           `json:"output,omitempty"`
	Error     string        `json:"error,omitempty"`
	Kind      string        `json:"kind,omitempty"`
	Data      hexutil.Bytes `json:"data,omitempty"` // revert reason as Error(string)
}

// Option configures a Host.
type Option func(h *Host)

// WithClock replaces the wall clock used for calls without a timestamp.
func WithClock(clock func() uint64) Option {
	return func(h *Host) { h.clock = clock }
}

// WithManualTime lets executed calls carry their own timestamp, as long as it
// is not ahead of the host clock. Meant for development networks.
func WithManualTime() Option {
	return func(h *Host) { h.manualTime = true }
}

// WithCacheSize sets the number of storage slots cached in memory.
func WithCacheSize(n int) Option {
	return func(h *Host) { h.cacheSize = n }
}

// Host serializes calls and commits their writes atomically.
type Host struct {
	mu         sync.Mutex
	store      kv.Store
	meta       kv.GetPutter
	stater     *state.Stater
	clock      func() uint64
	cacheSize  int
	manualTime bool

	lastTimestamp uint64
}

// New opens a host over store.
func New(store kv.Store, opts ...Option) (*Host, error) {
	h := &Host{
		store: store,
		meta: &struct {
			kv.Getter
			kv.Putter
		}{metaBucket.NewGetter(store), metaBucket.NewPutter(store)},
		clock: func() uint64 { return uint64(time.Now().UnixMilli()) },
	}
	for _, opt := range opts {
		opt(h)
	}
	stater, err := state.NewStater(store, h.cacheSize)
	if err != nil {
		return nil, err
	}
	h.stater = stater

	raw, err := h.meta.Get(keyLastTimestamp)
	if err != nil {
		if !h.meta.IsNotFound(err) {
			return nil, errors.Wrap(err, "load last timestamp")
		}
	} else if len(raw) == 8 {
		h.lastTimestamp = binary.BigEndian.Uint64(raw)
	}
	return h, nil
}

// LastTimestamp returns the time of the last committed call.
func (h *Host) LastTimestamp() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastTimestamp
}

// Bootstrapped reports whether genesis state was committed.
func (h *Host) Bootstrapped() (bool, error) {
	return h.meta.Has(keyBootstrapped)
}

// Bootstrap commits the state built by fn as genesis, at launch time.
func (h *Host) Bootstrap(launch uint64, fn func(st *state.State) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if done, err := h.meta.Has(keyBootstrapped); err != nil {
		return err
	} else if done {
		return ErrBootstrapped
	}
	st := h.stater.NewState()
	if err := fn(st); err != nil {
		return errors.WithMessage(err, "bootstrap")
	}
	return h.commit(st, launch, func(p kv.Putter) error {
		return metaBucket.NewPutter(p).Put(keyBootstrapped, []byte{1})
	})
}

// Read runs fn over the committed state. Writes made by fn are discarded.
func (h *Host) Read(fn func(st *state.State) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.stater.NewState())
}

// timestamp resolves the time of a call. Views may preview any time not
// before the last call since they commit nothing.
func (h *Host) timestamp(requested uint64, view bool) (uint64, error) {
	now := max(h.clock(), h.lastTimestamp)
	if requested == 0 {
		return now, nil
	}
	if !view {
		if !h.manualTime {
			return 0, ErrManualTime
		}
		if requested > now {
			return 0, errors.WithMessage(ErrFutureTimestamp, fmt.Sprintf("%d > %d", requested, now))
		}
	}
	if requested < h.lastTimestamp {
		return 0, errors.WithMessage(ErrTimestampRegression, fmt.Sprintf("%d < %d", requested, h.lastTimestamp))
	}
	return requested, nil
}

// Execute runs call and commits its writes unless it reverts. The error is
// reserved for calls that could not be run at all.
func (h *Host) Execute(call *Call) (*Receipt, error) {
	return h.run(call, false)
}

// View runs a read-only method without committing.
func (h *Host) View(call *Call) (*Receipt, error) {
	return h.run(call, true)
}

func (h *Host) run(call *Call, view bool) (receipt *Receipt, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	start := time.Now()
	defer func() {
		result := "error"
		if receipt != nil {
			result = strconv.FormatBool(!receipt.Reverted)
		}
		metricCallDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"method": call.Method, "result": result})
	}()

	if done, err := h.meta.Has(keyBootstrapped); err != nil {
		return nil, err
	} else if !done {
		return nil, ErrNotBootstrapped
	}

	ts, err := h.timestamp(call.Timestamp, view)
	if err != nil {
		return nil, err
	}
	replayChecked := !view && !call.ID.IsZero()
	if replayChecked {
		if known, err := callBucket.NewGetter(h.store).Has(call.ID[:]); err != nil {
			return nil, err
		} else if known {
			return nil, errors.WithMessage(ErrKnownCall, call.ID.String())
		}
	}
	st := h.stater.NewState()
	method, err := builtin.FindMethod(st, call.Contract, call.Method)
	if err != nil {
		return nil, err
	}
	if view && !method.ReadOnly {
		return nil, errors.WithMessage(ErrWriteProtection, call.Method)
	}

	checkpoint := st.NewCheckpoint()
	output, err := method.Call(xenv.New(st, call.Caller, call.Contract, ts), call.Args)
	if err != nil {
		if errors.Is(err, builtin.ErrInvalidArgs) || isStateError(err) {
			return nil, err
		}
		st.RevertTo(checkpoint)
		logger.Info("call reverted", "contract", call.Contract, "method", call.Method, "caller", call.Caller, "error", err)
		if replayChecked {
			// a reverted call is spent too
			if err := callBucket.NewPutter(h.store).Put(call.ID[:], []byte{1}); err != nil {
				return nil, errors.Wrap(err, "record call")
			}
		}
		return revertedReceipt(ts, err), nil
	}

	receipt = &Receipt{Timestamp: ts, Output: output}
	if view || (method.ReadOnly && !replayChecked) {
		return receipt, nil
	}
	var extras []func(kv.Putter) error
	if replayChecked {
		extras = append(extras, func(p kv.Putter) error {
			return callBucket.NewPutter(p).Put(call.ID[:], []byte{1})
		})
	}
	if err := h.commit(st, ts, extras...); err != nil {
		return nil, err
	}
	logger.Debug("call executed", "contract", call.Contract, "method", call.Method, "caller", call.Caller, "timestamp", ts)
	return receipt, nil
}

func revertedReceipt(ts uint64, err error) *Receipt {
	receipt := &Receipt{
		Timestamp: ts,
		Reverted:  true,
		Error:     err.Error(),
		Kind:      reverts.KindOf(err).String(),
	}
	var revert *reverts.ErrRevert
	if errors.As(err, &revert) {
		receipt.Data = revert.Bytes()
	}
	return receipt
}

func isStateError(err error) bool {
	var stateErr *state.Error
	return errors.As(err, &stateErr)
}

func (h *Host) commit(st *state.State, ts uint64, extras ...func(kv.Putter) error) error {
	var raw [8]byte
	binary.BigEndian.PutUint64(raw[:], ts)
	extras = append(extras, func(p kv.Putter) error {
		return metaBucket.NewPutter(p).Put(keyLastTimestamp, raw[:])
	})
	if err := h.stater.Commit(h.store, st.Stage(), extras...); err != nil {
		return errors.WithMessage(err, "commit")
	}
	h.lastTimestamp = ts
	return nil
}

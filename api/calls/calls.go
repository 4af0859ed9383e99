// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package calls

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/govstake/api/utils"
	"github.com/vechain/govstake/builtin"
	"github.com/vechain/govstake/call"
	"github.com/vechain/govstake/host"
	"github.com/vechain/govstake/log"
	"github.com/vechain/govstake/thor"
)

var logger = log.WithContext("pkg", "calls")

type Calls struct {
	host     *host.Host
	chainTag byte
}

func New(host *host.Host, chainTag byte) *Calls {
	return &Calls{host, chainTag}
}

// ViewRequest is an unsigned read-only call. Nothing it does is committed,
// so the caller is taken as given.
type ViewRequest struct {
	Caller    thor.Address    `json:"caller"`
	Contract  thor.Address    `json:"contract"`
	Method    string          `json:"method"`
	Args      json.RawMessage `json:"args,omitempty"`
	Timestamp uint64          `json:"timestamp,omitempty"`
}

func (c *Calls) handleGetChainTag(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, map[string]any{"chainTag": c.chainTag})
}

func (c *Calls) handleExecute(w http.ResponseWriter, req *http.Request) error {
	var env call.Envelope
	if err := utils.ParseJSON(req.Body, &env); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if env.Method == "" {
		return utils.BadRequest(errors.New("method: required"))
	}
	origin, id, err := env.Verify(c.chainTag)
	if err != nil {
		return utils.BadRequest(err)
	}
	return c.run(w, &host.Call{
		ID:        id,
		Caller:    origin,
		Contract:  env.Contract,
		Method:    env.Method,
		Args:      env.Args,
		Timestamp: env.Timestamp,
	}, c.host.Execute)
}

func (c *Calls) handleView(w http.ResponseWriter, req *http.Request) error {
	var view ViewRequest
	if err := utils.ParseJSON(req.Body, &view); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if view.Method == "" {
		return utils.BadRequest(errors.New("method: required"))
	}
	return c.run(w, &host.Call{
		Caller:    view.Caller,
		Contract:  view.Contract,
		Method:    view.Method,
		Args:      view.Args,
		Timestamp: view.Timestamp,
	}, c.host.View)
}

func (c *Calls) run(w http.ResponseWriter, hc *host.Call, run func(*host.Call) (*host.Receipt, error)) error {
	receipt, err := run(hc)
	if err != nil {
		switch {
		case errors.Is(err, builtin.ErrUnknownContract), errors.Is(err, builtin.ErrUnknownMethod):
			return utils.NotFound(err)
		case errors.Is(err, builtin.ErrInvalidArgs),
			errors.Is(err, host.ErrTimestampRegression),
			errors.Is(err, host.ErrFutureTimestamp),
			errors.Is(err, host.ErrManualTime),
			errors.Is(err, host.ErrWriteProtection):
			return utils.BadRequest(err)
		case errors.Is(err, host.ErrKnownCall):
			return utils.HTTPError(err, http.StatusConflict)
		case errors.Is(err, host.ErrNotBootstrapped):
			return utils.HTTPError(err, http.StatusServiceUnavailable)
		}
		logger.Error("call failed", "method", hc.Method, "contract", hc.Contract, "error", err)
		return err
	}
	if receipt.Reverted {
		return utils.WriteJSONStatus(w, utils.ReceiptStatus(receipt.Kind), receipt)
	}
	return utils.WriteJSON(w, receipt)
}

func (c *Calls) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).Name("POST /calls").HandlerFunc(utils.WrapHandlerFunc(c.handleExecute))
	sub.Path("/view").Methods(http.MethodPost).Name("POST /calls/view").HandlerFunc(utils.WrapHandlerFunc(c.handleView))
	sub.Path("/chain-tag").Methods(http.MethodGet).Name("GET /calls/chain-tag").HandlerFunc(utils.WrapHandlerFunc(c.handleGetChainTag))
}

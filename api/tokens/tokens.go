// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tokens

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/govstake/api/utils"
	"github.com/vechain/govstake/builtin"
	"github.com/vechain/govstake/host"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
)

type Tokens struct {
	host *host.Host
}

func New(host *host.Host) *Tokens {
	return &Tokens{host}
}

func (t *Tokens) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := thor.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var (
		balance   u128.Int
		positions uint64
	)
	if err := t.host.Read(func(st *state.State) error {
		if balance, err = builtin.Token.Native(st).BalanceOf(*addr); err != nil {
			return err
		}
		reg, err := builtin.Staking.Positions(st)
		if err != nil {
			return err
		}
		positions, err = reg.BalanceOf(*addr)
		return err
	}); err != nil {
		return utils.Revert(err)
	}
	return utils.WriteJSON(w, utils.M{
		"address":   addr,
		"balance":   balance,
		"positions": positions,
	})
}

func (t *Tokens) handleGetSupply(w http.ResponseWriter, _ *http.Request) error {
	var supply u128.Int
	if err := t.host.Read(func(st *state.State) (err error) {
		supply, err = builtin.Token.Native(st).TotalSupply()
		return
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, utils.M{"address": builtin.Token.Address, "totalSupply": supply})
}

func (t *Tokens) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/supply").Methods(http.MethodGet).Name("GET /tokens/supply").HandlerFunc(utils.WrapHandlerFunc(t.handleGetSupply))
	sub.Path("/{address}/balance").Methods(http.MethodGet).Name("GET /tokens/{address}/balance").HandlerFunc(utils.WrapHandlerFunc(t.handleGetBalance))
}

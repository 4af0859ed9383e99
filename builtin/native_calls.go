// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/pkg/errors"

	"github.com/vechain/govstake/builtin/position"
	"github.com/vechain/govstake/builtin/staking"
	"github.com/vechain/govstake/state"
	"github.com/vechain/govstake/thor"
	"github.com/vechain/govstake/u128"
	"github.com/vechain/govstake/xenv"
)

var (
	ErrUnknownContract = errors.New("native call: unknown contract")
	ErrUnknownMethod   = errors.New("native call: unknown method")
	ErrInvalidArgs     = errors.New("native call: invalid args")
)

type contractKind uint8

const (
	kindToken contractKind = iota + 1
	kindStaking
	kindPosition
)

// Method is a native contract method callable through the host.
type Method struct {
	Name     string
	ReadOnly bool
	run      func(env *xenv.Environment, args json.RawMessage) (any, error)
}

// Call runs the method in env. args is a JSON object, empty means no args.
func (m *Method) Call(env *xenv.Environment, args json.RawMessage) (any, error) {
	return m.run(env, args)
}

var methods = map[contractKind]map[string]*Method{}

func impl(kind contractKind, name string, readOnly bool, run func(env *xenv.Environment, args json.RawMessage) (any, error)) {
	if methods[kind] == nil {
		methods[kind] = make(map[string]*Method)
	}
	methods[kind][name] = &Method{Name: name, ReadOnly: readOnly, run: run}
}

func parseArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(ErrInvalidArgs, err.Error())
	}
	return nil
}

func kindOf(state *state.State, contract thor.Address) (contractKind, error) {
	switch contract {
	case Token.Address:
		return kindToken, nil
	case Staking.Address:
		return kindStaking, nil
	}
	settings, err := Staking.Settings(state)
	if err == nil && settings.NFT == contract {
		return kindPosition, nil
	}
	return 0, errors.WithMessage(ErrUnknownContract, contract.String())
}

// FindMethod looks up name on the builtin contract deployed at contract.
func FindMethod(state *state.State, contract thor.Address, name string) (*Method, error) {
	kind, err := kindOf(state, contract)
	if err != nil {
		return nil, err
	}
	m, ok := methods[kind][name]
	if !ok {
		return nil, errors.WithMessage(ErrUnknownMethod, name)
	}
	return m, nil
}

// MethodNames lists the methods of the contract at contract, sorted.
func MethodNames(state *state.State, contract thor.Address) ([]string, error) {
	kind, err := kindOf(state, contract)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(methods[kind]))
	for name := range methods[kind] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

type idArgs struct {
	ID position.ID `json:"id"`
}

type weightArgs struct {
	ID     position.ID `json:"id"`
	Amount u128.Int    `json:"amount"`
}

func init() {
	stakingMethods()
	tokenMethods()
	positionMethods()
}

func stakingMethods() {
	native := func(env *xenv.Environment) (*staking.Staking, error) {
		return Staking.Native(env.State())
	}
	withID := func(readOnly bool, name string, fn func(env *xenv.Environment, s *staking.Staking, id position.ID) (any, error)) {
		impl(kindStaking, name, readOnly, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
			var args idArgs
			if err := parseArgs(raw, &args); err != nil {
				return nil, err
			}
			s, err := native(env)
			if err != nil {
				return nil, err
			}
			return fn(env, s, args.ID)
		})
	}

	impl(kindStaking, "deposit", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			Amount u128.Int      `json:"amount"`
			To     *thor.Address `json:"to"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		s, err := native(env)
		if err != nil {
			return nil, err
		}
		id, err := s.Deposit(env, args.Amount, args.To)
		if err != nil {
			return nil, err
		}
		return map[string]any{"id": id}, nil
	})
	impl(kindStaking, "increaseWeight", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args weightArgs
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		s, err := native(env)
		if err != nil {
			return nil, err
		}
		return nil, s.IncreaseWeight(env, args.ID, args.Amount)
	})
	impl(kindStaking, "decreaseWeight", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args weightArgs
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		s, err := native(env)
		if err != nil {
			return nil, err
		}
		return nil, s.DecreaseWeight(env, args.ID, args.Amount)
	})
	withID(false, "claim", func(env *xenv.Environment, s *staking.Staking, id position.ID) (any, error) {
		reward, err := s.Claim(env, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"reward": reward}, nil
	})
	withID(false, "requestUnlock", func(env *xenv.Environment, s *staking.Staking, id position.ID) (any, error) {
		return nil, s.RequestUnlock(env, id)
	})
	withID(false, "withdraw", func(env *xenv.Environment, s *staking.Staking, id position.ID) (any, error) {
		amount, err := s.Withdraw(env, id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"amount": amount}, nil
	})

	withID(true, "pendingReward", func(env *xenv.Environment, s *staking.Staking, id position.ID) (any, error) {
		reward, err := s.PendingReward(id, env.Timestamp())
		if err != nil {
			return nil, err
		}
		return map[string]any{"reward": reward}, nil
	})
	withID(true, "lastClaim", func(_ *xenv.Environment, s *staking.Staking, id position.ID) (any, error) {
		ts, recorded, err := s.LastClaim(id)
		if err != nil {
			return nil, err
		}
		return map[string]any{"time": ts, "recorded": recorded}, nil
	})
	withID(true, "unlockRequest", func(_ *xenv.Environment, s *staking.Staking, id position.ID) (any, error) {
		return s.UnlockRequest(id)
	})
	impl(kindStaking, "pool", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		s, err := native(env)
		if err != nil {
			return nil, err
		}
		return s.Pool()
	})
	impl(kindStaking, "governanceNFT", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		s, err := native(env)
		if err != nil {
			return nil, err
		}
		return map[string]any{"address": s.GovernanceNFT()}, nil
	})
	impl(kindStaking, "settings", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		s, err := native(env)
		if err != nil {
			return nil, err
		}
		settings, err := s.Settings()
		if err != nil {
			return nil, err
		}
		return map[string]any{"settings": settings, "withdrawDelay": s.WithdrawDelay()}, nil
	})
}

func tokenMethods() {
	impl(kindToken, "transfer", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			To     thor.Address `json:"to"`
			Amount u128.Int     `json:"amount"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		return nil, Token.Native(env.State()).Transfer(env, args.To, args.Amount)
	})
	impl(kindToken, "approve", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			Spender thor.Address `json:"spender"`
			Amount  u128.Int     `json:"amount"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		return nil, Token.Native(env.State()).Approve(env, args.Spender, args.Amount)
	})
	impl(kindToken, "transferFrom", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			From   thor.Address `json:"from"`
			To     thor.Address `json:"to"`
			Amount u128.Int     `json:"amount"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		return nil, Token.Native(env.State()).TransferFrom(env, args.From, args.To, args.Amount)
	})
	impl(kindToken, "balanceOf", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			Owner thor.Address `json:"owner"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		bal, err := Token.Native(env.State()).BalanceOf(args.Owner)
		if err != nil {
			return nil, err
		}
		return map[string]any{"balance": bal}, nil
	})
	impl(kindToken, "allowance", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			Owner   thor.Address `json:"owner"`
			Spender thor.Address `json:"spender"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		allowance, err := Token.Native(env.State()).Allowance(args.Owner, args.Spender)
		if err != nil {
			return nil, err
		}
		return map[string]any{"allowance": allowance}, nil
	})
	impl(kindToken, "totalSupply", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		supply, err := Token.Native(env.State()).TotalSupply()
		if err != nil {
			return nil, err
		}
		return map[string]any{"totalSupply": supply}, nil
	})
}

func positionMethods() {
	native := func(env *xenv.Environment) *position.Registry {
		return position.New(env.To(), env.State())
	}

	impl(kindPosition, "transfer", false, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			To thor.Address `json:"to"`
			ID position.ID  `json:"id"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		return nil, native(env).Transfer(env, args.To, args.ID)
	})
	impl(kindPosition, "get", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args idArgs
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		return native(env).Get(args.ID)
	})
	impl(kindPosition, "ownerOf", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args idArgs
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		owner, err := native(env).OwnerOf(args.ID)
		if err != nil {
			return nil, err
		}
		return map[string]any{"owner": owner}, nil
	})
	impl(kindPosition, "balanceOf", true, func(env *xenv.Environment, raw json.RawMessage) (any, error) {
		var args struct {
			Owner thor.Address `json:"owner"`
		}
		if err := parseArgs(raw, &args); err != nil {
			return nil, err
		}
		bal, err := native(env).BalanceOf(args.Owner)
		if err != nil {
			return nil, err
		}
		return map[string]any{"balance": bal}, nil
	})
}

// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package hooks

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/luxfi/crosschain"
)

// BasisPointsDenominator is 100%.
const BasisPointsDenominator = 10_000

// FeeHook deducts a proportional fee from the message amount.
//
// The fee is amount*BasisPoints/10000 rounded half up, raised to MinFee when
// lower. The fee is recorded in msg.Fee and subtracted from msg.Amount.
type FeeHook struct {
	BasisPoints uint64
	MinFee      *uint256.Int
}

func NewFeeHook(basisPoints uint64, minFee *uint256.Int) *FeeHook {
	return &FeeHook{BasisPoints: basisPoints, MinFee: minFee}
}

func (*FeeHook) Name() string { return "fee" }

func (h *FeeHook) Execute(msg *crosschain.Message, _, _ crosschain.ChainID) error {
	if msg.Amount == nil {
		return crosschain.ErrMissingAmount
	}
	fee, err := h.Compute(msg.Amount)
	if err != nil {
		return err
	}
	if fee.Gt(msg.Amount) {
		return fmt.Errorf("%w: fee %s exceeds amount %s", crosschain.ErrInsufficientFunds, fee.Dec(), msg.Amount.Dec())
	}
	msg.Amount = new(uint256.Int).Sub(msg.Amount, fee)
	msg.Fee = fee
	return nil
}

// Compute returns the fee owed on amount.
func (h *FeeHook) Compute(amount *uint256.Int) (*uint256.Int, error) {
	fee, overflow := new(uint256.Int).MulOverflow(amount, uint256.NewInt(h.BasisPoints))
	if overflow {
		return nil, fmt.Errorf("%w: fee on %s overflows", crosschain.ErrInsufficientFunds, amount.Dec())
	}
	fee, overflow = fee.AddOverflow(fee, uint256.NewInt(BasisPointsDenominator/2))
	if overflow {
		return nil, fmt.Errorf("%w: fee on %s overflows", crosschain.ErrInsufficientFunds, amount.Dec())
	}
	fee.Div(fee, uint256.NewInt(BasisPointsDenominator))
	if h.MinFee != nil && fee.Lt(h.MinFee) {
		fee.Set(h.MinFee)
	}
	return fee, nil
}

package rma

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// RefundMethod is how a refund is paid out.
type RefundMethod int

const (
	// UnknownRefundMethod represents an invalid or undefined method.
	UnknownRefundMethod RefundMethod = iota

	// OriginalPayment refunds to the payment instrument of the original order.
	OriginalPayment

	// StoreCredit refunds as credit on the customer's account.
	StoreCredit

	// BankTransfer refunds by manual wire transfer.
	BankTransfer
)

func getRefundMethodStrings() map[RefundMethod]string {
	return map[RefundMethod]string{
		UnknownRefundMethod: "Unknown",
		OriginalPayment:     "OriginalPayment",
		StoreCredit:         "StoreCredit",
		BankTransfer:        "BankTransfer",
	}
}

// Validate checks if the RefundMethod value is one of the defined methods.
func (m RefundMethod) Validate() error {
	if m == UnknownRefundMethod {
		return errs.NewValueIsRequiredError("refundMethod")
	}
	if _, ok := getRefundMethodStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("refundMethod",
			fmt.Errorf("%d is not a valid refund method", m))
	}
	return nil
}

// String returns the human-readable name of the method.
func (m RefundMethod) String() string {
	if str, ok := getRefundMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}

// RefundMethodFromString parses a refund method name.
func RefundMethodFromString(v string) (RefundMethod, error) {
	for m, str := range getRefundMethodStrings() {
		if str == v && m != UnknownRefundMethod {
			return m, nil
		}
	}
	return UnknownRefundMethod, errs.NewValueIsInvalidErrorWithCause("refundMethod",
		fmt.Errorf("%q is not a valid refund method", v))
}

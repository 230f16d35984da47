// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package bind

import "fmt"

// RetCode is a node return code together with its description.
// RetCode 是节点返回码及其描述。
type RetCode struct {
	Code    uint64
	Message string
}

func (r RetCode) String() string {
	return fmt.Sprintf("%d (%s)", r.Code, r.Message)
}

// Execution and transaction pool return codes reported in receipt status.
var receiptStatus = map[uint64]string{
	0:     "Success",
	1:     "Unknown",
	2:     "OutOfGasLimit",
	3:     "NotEnoughCash",
	10:    "BadInstruction",
	11:    "BadJumpDestination",
	12:    "OutOfGas",
	13:    "OutOfStack",
	14:    "StackUnderflow",
	15:    "PrecompiledError",
	16:    "RevertInstruction",
	17:    "ContractAddressAlreadyUsed",
	18:    "PermissionDenied",
	19:    "CallAddressError",
	20:    "GasOverflow",
	21:    "ContractFrozen",
	22:    "AccountFrozen",
	23:    "AccountAbolished",
	24:    "ContractAbolished",
	10000: "NonceCheckFail",
	10001: "BlockLimitCheckFail",
	10002: "TxPoolIsFull",
	10003: "Malformed",
	10004: "AlreadyInTxPool",
	10005: "TxAlreadyInChain",
	10006: "InvalidChainId",
	10007: "InvalidGroupId",
	10008: "InvalidSignature",
	10009: "RequestNotBelongToTheGroup",
}

// ParseReceiptStatus maps a receipt status code to its description. Codes
// outside the table are reported as unknown.
// ParseReceiptStatus 将收据状态码映射为描述信息。
func ParseReceiptStatus(status uint64) RetCode {
	if msg, ok := receiptStatus[status]; ok {
		return RetCode{Code: status, Message: msg}
	}
	return RetCode{Code: status, Message: fmt.Sprintf("unknown status %d", status)}
}

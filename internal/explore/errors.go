//
// Copyright (c) 2026 Harmony Authors
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package explore

import "errors"

var (
	errEmptyChoosingStack   = errors.New("explore: choosing context has an empty stack")
	errChoosingStackNotASet = errors.New("explore: choosing context's top-of-stack is not a Set")
)

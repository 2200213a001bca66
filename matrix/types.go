// SPDX-License-Identifier: MIT

package matrix

// DefaultPivotTol is the absolute pivot magnitude below which a triangular
// factor is treated as singular.
const DefaultPivotTol = 1e-12

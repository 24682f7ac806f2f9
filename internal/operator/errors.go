package operator

import "errors"

// Sentinel errors for the operator layer. Wrap with fmt.Errorf("%w: ...")
// and match with errors.Is.
var (
	ErrValidation                    = errors.New("operator validation failed")
	ErrMatrixUndefined               = errors.New("matrix representation undefined")
	ErrSparseMatrixUndefined         = errors.New("sparse matrix representation undefined")
	ErrEigvalsUndefined              = errors.New("eigenvalues undefined")
	ErrDiagonalizingGatesUndefined   = errors.New("diagonalizing gates undefined")
	ErrGeneratorUndefined            = errors.New("generator undefined")
	ErrParameterFrequenciesUndefined = errors.New("parameter frequencies undefined")
	ErrDecompositionUndefined        = errors.New("decomposition undefined")
	ErrAdjointUndefined              = errors.New("adjoint undefined")
	ErrPowUndefined                  = errors.New("power undefined")
	ErrWireOrderUnsupported          = errors.New("wire order argument not supported")
)

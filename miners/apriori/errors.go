package apriori

import (
	"fmt"
)

import (
	"github.com/timtadh/sapriori/config"
)

// ErrInvalidConfiguration is returned by NewMiner, wrapped with the reasons.
var ErrInvalidConfiguration = config.ErrInvalidConfiguration

// ErrExhaustedActiveSet is returned by the estimator when there are no
// active transactions left to sample.
var ErrExhaustedActiveSet = fmt.Errorf("the active transaction set is exhausted")

// ErrAlreadyMined is returned by a second call to Mine. The active set and
// boundary are spent after one run.
var ErrAlreadyMined = fmt.Errorf("this miner has already mined")

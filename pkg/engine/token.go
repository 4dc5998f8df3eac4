package engine

import "github.com/yaklabco/excmd/pkg/token"

// Token is re-exported so callers of Tokens need not import the token package.
type Token = token.Token

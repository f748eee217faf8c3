package api

import "homeclean/internal/pkg/errs"

var errUnauthenticated = errs.Mark(errs.New("authentication required"), errs.ErrUnauthorized)

package handlers

import (
	"strings"
	"sync"

	"github.com/Rhymond/go-money"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the ledger's binding tags to gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", validateCurrency)
		_ = v.RegisterValidation("txtype", validateTransactionType)
	})
}

func validateCurrency(fl validator.FieldLevel) bool {
	code := strings.ToUpper(fl.Field().String())
	return len(code) == 3 && money.GetCurrency(code) != nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	return domain.TransactionType(fl.Field().String()).IsValid()
}

package test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestOptimiser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Optimiser Suite")
}

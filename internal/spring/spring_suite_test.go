package spring_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSpring(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Spring Suite")
}

package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretArithmeticAndStringConcat(t *testing.T) {
	lines, err := RunCollecting(`
		print 1 + 2 * 3;
		print "a" + "b";
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "ab"}, lines)
}

func TestInterpretBlockScoping(t *testing.T) {
	lines, err := RunCollecting(`
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner", "outer"}, lines)
}

func TestInterpretClosureCounter(t *testing.T) {
	lines, err := RunCollecting(`
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, lines)
}

func TestInterpretStaticScopeThroughFunctions(t *testing.T) {
	// Closures capture the scope they were defined in, not the scope of
	// whoever calls them later.
	lines, err := RunCollecting(`
		var a = "global";
		fun showA() {
			print a;
		}
		fun runIt() {
			var a = "block";
			showA();
		}
		runIt();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"global"}, lines)
}

func TestInterpretThisAndMethodBinding(t *testing.T) {
	lines, err := RunCollecting(`
		class Cake {
			taste() {
				var adjective = "delicious";
				print "The " + this.flavor + " cake is " + adjective + "!";
			}
		}
		var cake = Cake();
		cake.flavor = "German chocolate";
		cake.taste();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"The German chocolate cake is delicious!"}, lines)
}

func TestInterpretInheritanceAndSuper(t *testing.T) {
	lines, err := RunCollecting(`
		class Doughnut {
			cook() {
				print "Fry until golden brown.";
			}
		}
		class BostonCream < Doughnut {
			cook() {
				super.cook();
				print "Pipe full of custard and coat with chocolate.";
			}
		}
		BostonCream().cook();
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Fry until golden brown.",
		"Pipe full of custard and coat with chocolate.",
	}, lines)
}

func TestInterpretResolverDiagnosticOnRedeclaration(t *testing.T) {
	_, err := RunCollecting(`
		fun bad() {
			var a = 1;
			var a = 2;
		}
	`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Already a variable with this name in this scope.")
}

func TestInterpretRuntimeDiagnosticOnCallingNonCallable(t *testing.T) {
	_, err := RunCollecting(`var a = 1; a();`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[line 1] Error: Can only call functions and classes, got '1'.")
}

func TestInterpretInitReturnsBoundThis(t *testing.T) {
	lines, err := RunCollecting(`
		class Thing {
			init(name) {
				this.name = name;
				return;
			}
		}
		var t = Thing("widget");
		print t.name;
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"widget"}, lines)
}

func TestInterpretNaNIsNeverEqualToItself(t *testing.T) {
	lines, err := RunCollecting(`
		var nan = 0.0 / 0.0;
		print nan == nan;
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"false"}, lines)
}

func TestInterpretIntegerValuedFloatPrintsWithoutDecimal(t *testing.T) {
	lines, err := RunCollecting(`print 6.0 / 2;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, lines)
}

func TestInterpretClockBuiltinArity(t *testing.T) {
	lines, err := RunCollecting(`print clock() >= 0;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, lines)
}

func TestInterpretUndefinedVariableIsRuntimeError(t *testing.T) {
	_, err := RunCollecting(`print undeclared;`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable 'undeclared'.")
}

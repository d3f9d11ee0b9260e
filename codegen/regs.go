package codegen

// argRegs64 holds the System V integer argument registers, by parameter
// index 0..5.
var argRegs64 = [6]string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// argRegs8 holds the byte-sized aliases of the same registers, used when
// storing a char-sized parameter.
var argRegs8 = [6]string{"dil", "sil", "dl", "cl", "r8b", "r9b"}

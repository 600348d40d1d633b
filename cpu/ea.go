package cpu

import (
	"log"
)

// calculateEA resolves the effective address of IR into MA, following
// index registers and indirect words until the indirect bit is clear.
func (cpu *Cpu) calculateEA() (err error) {
	x := cpu.IR
	for {
		address := uint32(x & RIGHT)
		index := int(x>>INDEX_SHIFT) & INDEX_MASK
		if index != 0 {
			address = (address + uint32(cpu.FM[index]&RIGHT)) & ADDRESS_MASK
		}

		if (x>>INDIRECT_SHIFT)&1 == 0 {
			cpu.MA = address
			break
		}

		if cpu.Verbose {
			log.Printf("%06o: indirect %06o", cpu.here, address)
		}

		x, err = cpu.ReadMemory(address)
		if err != nil {
			return
		}
	}

	return
}

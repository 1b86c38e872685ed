package workspace

import "github.com/fentz26/kernelsim/internal/models"

// templates are the built-in example programs. The first template of each
// language seeds that language's draft.
var templates = []models.Template{
	{
		ID:          "cuda-vector-add",
		Name:        "Vector Addition",
		Language:    models.LanguageCUDA,
		Description: "Standard CUDA kernel for adding two vectors",
		Code: `__global__ void vectorAdd(const float *A, const float *B, float *C, int numElements) {
    int i = blockDim.x * blockIdx.x + threadIdx.x;
    if (i < numElements) {
        C[i] = A[i] + B[i];
    }
}

int main() {
    int n = 1024;
    size_t size = n * sizeof(float);
    // Simulation logic here...
    return 0;
}`,
	},
	{
		ID:          "cuda-matrix-mul",
		Name:        "Matrix Multiplication",
		Language:    models.LanguageCUDA,
		Description: "Tiled matrix multiplication kernel",
		Code: `__global__ void matrixMul(float* C, float* A, float* B, int wA, int wB) {
    // Implementation logic
}`,
	},
	{
		ID:          "cpp-hello",
		Name:        "Hello World",
		Language:    models.LanguageCPP,
		Description: "Basic C++ structure",
		Code: `#include <iostream>

int main() {
    std::cout << "Hello, kernelsim!" << std::endl;
    return 0;
}`,
	},
	{
		ID:          "python-numpy",
		Name:        "NumPy Simulation",
		Language:    models.LanguagePython,
		Description: "High-performance Python with NumPy",
		Code: `import numpy as np

def main():
    a = np.array([1, 2, 3])
    b = np.array([4, 5, 6])
    c = a + b
    print(f"Result: {c}")

if __name__ == "__main__":
    main()`,
	},
}

// Templates returns the built-in examples for lang.
func Templates(lang models.Language) []models.Template {
	var out []models.Template
	for _, t := range templates {
		if t.Language == lang {
			out = append(out, t)
		}
	}
	return out
}

// DefaultCode returns the seed buffer for lang.
func DefaultCode(lang models.Language) string {
	if ts := Templates(lang); len(ts) > 0 {
		return ts[0].Code
	}
	return ""
}
